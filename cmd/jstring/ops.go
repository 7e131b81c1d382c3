package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/AdrianWangs/go-jstring/pkg/logger"
	"github.com/AdrianWangs/go-jstring/pkg/str"
)

const usage = `ops:
  concat <a> <b>
  substring <s> <start> [end]
  indexof <s> <needle> [from]
  fromint <i>
  parsefloat <s>
  hash <s>`

var errUsage = errors.New(usage)

type op struct {
	minArgs, maxArgs int
	eval             func(args []string) (string, error)
}

var ops = map[string]op{
	"concat": {2, 2, func(args []string) (string, error) {
		return str.New(args[0]).Concat(str.New(args[1])).String(), nil
	}},
	"substring": {2, 3, func(args []string) (string, error) {
		s := str.New(args[0])
		start, err := atoi(args, 1, 0)
		if err != nil {
			return "", err
		}
		end, err := atoi(args, 2, s.Len())
		if err != nil {
			return "", err
		}
		sub, err := s.Substring(start, end)
		if err != nil {
			return "", err
		}
		return sub.String(), nil
	}},
	"indexof": {2, 3, func(args []string) (string, error) {
		from, err := atoi(args, 2, 0)
		if err != nil {
			return "", err
		}
		return str.FromInt(str.New(args[0]).IndexOfFrom(str.New(args[1]), from)).String(), nil
	}},
	"fromint": {1, 1, func(args []string) (string, error) {
		i, err := atoi(args, 0, 0)
		if err != nil {
			return "", err
		}
		return str.FromInt(i).String(), nil
	}},
	"parsefloat": {1, 1, func(args []string) (string, error) {
		f, err := str.New(args[0]).ParseFloat()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}},
	"hash": {1, 1, func(args []string) (string, error) {
		return str.FromInt(int(str.New(args[0]).HashCode())).String(), nil
	}},
}

// run evaluates one operation and prints its result
func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	o, ok := ops[args[0]]
	operands := args[1:]
	if !ok || len(operands) < o.minArgs || len(operands) > o.maxArgs {
		return errUsage
	}

	logger.WithFields(logger.Fields{"op": args[0], "args": operands}).Debug("evaluating")
	res, err := o.eval(operands)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, res)
	return err
}

// atoi parses args[i], returning def when the optional argument is absent
func atoi(args []string, i, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("argument %d is not an integer: %q", i+1, args[i])
	}
	return v, nil
}
