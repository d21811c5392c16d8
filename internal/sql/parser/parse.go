package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tuannm99/arenadb/internal/record"
)

var (
	ErrNotEnoughArguments = errors.New("parser: not enough arguments")
	ErrTooManyArguments   = errors.New("parser: too many arguments")
	ErrExpectingInteger   = errors.New("parser: expecting integer")
)

// Parse turns one line into a Statement.
// Lines starting with '.' are meta commands; anything no command
// recognizes becomes *UnknownStmt with a nil error.
func Parse(line string) (Statement, error) {
	s := strings.TrimSpace(line)

	if strings.HasPrefix(s, ".") {
		return parseMeta(s), nil
	}

	toks := strings.Fields(s)
	if len(toks) == 0 {
		return &UnknownStmt{Text: s}, nil
	}

	args := &argList{toks: toks[1:]}
	switch strings.ToLower(toks[0]) {
	case "insert":
		return parseInsert(args)
	case "select":
		return parseSelect(args)
	case "create":
		return parseCreate(args)
	default:
		return &UnknownStmt{Text: s}, nil
	}
}

func parseMeta(s string) Statement {
	toks := strings.Fields(s)
	if len(toks) == 1 {
		switch toks[0] {
		case ".exit":
			return &ExitStmt{}
		case ".tables":
			return &TablesStmt{}
		}
	}
	return &UnknownStmt{Text: s}
}

func parseInsert(args *argList) (Statement, error) {
	table, err := args.table()
	if err != nil {
		return nil, err
	}

	var rec record.Record
	switch table {
	case record.TableUser:
		rec, err = parseUserFields(args)
	case record.TableCar:
		rec, err = parseCarFields(args)
	default:
		return nil, &record.UnknownTableError{Name: table.String()}
	}
	if err != nil {
		return nil, err
	}

	if err := args.end(); err != nil {
		return nil, err
	}
	return &InsertStmt{Record: rec}, nil
}

// insert User <id:int> <username> <email>
func parseUserFields(args *argList) (record.Record, error) {
	id, err := args.integer("id")
	if err != nil {
		return nil, err
	}
	username, err := args.next("username")
	if err != nil {
		return nil, err
	}
	email, err := args.next("email")
	if err != nil {
		return nil, err
	}
	return record.NewUser(id, username, email), nil
}

// insert Car <id> <brand>
func parseCarFields(args *argList) (record.Record, error) {
	id, err := args.next("id")
	if err != nil {
		return nil, err
	}
	brand, err := args.next("brand")
	if err != nil {
		return nil, err
	}
	return record.NewCar(id, brand), nil
}

func parseSelect(args *argList) (Statement, error) {
	table, err := args.table()
	if err != nil {
		return nil, err
	}
	if err := args.end(); err != nil {
		return nil, err
	}
	return &SelectStmt{Table: table}, nil
}

func parseCreate(args *argList) (Statement, error) {
	table, err := args.table()
	if err != nil {
		return nil, err
	}
	if err := args.end(); err != nil {
		return nil, err
	}
	return &CreateTableStmt{Table: table}, nil
}

// argList hands out arguments left to right.
type argList struct {
	toks []string
	pos  int
}

func (a *argList) next(what string) (string, error) {
	if a.pos >= len(a.toks) {
		return "", fmt.Errorf("%w: missing %s", ErrNotEnoughArguments, what)
	}
	tok := a.toks[a.pos]
	a.pos++
	return tok, nil
}

func (a *argList) integer(what string) (int64, error) {
	tok, err := a.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrExpectingInteger, what, tok)
	}
	return v, nil
}

func (a *argList) table() (record.TableName, error) {
	tok, err := a.next("table name")
	if err != nil {
		return 0, err
	}
	return record.ParseTableName(tok)
}

func (a *argList) end() error {
	if a.pos < len(a.toks) {
		return fmt.Errorf("%w: unexpected %q", ErrTooManyArguments, a.toks[a.pos])
	}
	return nil
}
