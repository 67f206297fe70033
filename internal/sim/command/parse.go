// Package command turns console lines into calls on the world and ships.
package command

import "strings"

type Op string

const (
	OpMoveTo   Op = "MOVE_TO"
	OpMine     Op = "MINE"
	OpRecharge Op = "RECHARGE"
	OpInfo     Op = "INFO"
	OpPing     Op = "PING"
	OpOffload  Op = "OFFLOAD"
	OpEmpty    Op = "EMPTY"
)

type Command struct {
	Op   Op
	Args []string
}

var verbs = map[string]Op{
	"move":     OpMoveTo,
	"moveto":   OpMoveTo,
	"goto":     OpMoveTo,
	"mine":     OpMine,
	"recharge": OpRecharge,
	"info":     OpInfo,
	"status":   OpInfo,
	"ping":     OpPing,
	"scan":     OpPing,
	"offload":  OpOffload,
}

// Parse reads "<verb> [args...]". Blank or unknown input is OpEmpty.
func Parse(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Op: OpEmpty}
	}
	op, ok := verbs[strings.ToLower(fields[0])]
	if !ok {
		return Command{Op: OpEmpty, Args: fields}
	}
	return Command{Op: op, Args: fields[1:]}
}
