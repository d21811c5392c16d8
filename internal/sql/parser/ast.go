package parser

import "github.com/tuannm99/arenadb/internal/record"

// Statement is the root interface for all parsed commands.
type Statement interface {
	stmtNode()
}

// ----- meta -----

// ExitStmt is ".exit".
type ExitStmt struct{}

func (*ExitStmt) stmtNode() {}

// TablesStmt is ".tables".
type TablesStmt struct{}

func (*TablesStmt) stmtNode() {}

// ----- CREATE -----
type CreateTableStmt struct {
	Table record.TableName
}

func (*CreateTableStmt) stmtNode() {}

// ----- INSERT -----
type InsertStmt struct {
	Record record.Record
}

func (*InsertStmt) stmtNode() {}

// ----- SELECT -----
type SelectStmt struct {
	Table record.TableName
}

func (*SelectStmt) stmtNode() {}

// UnknownStmt is any line no command claims. It is not an error.
type UnknownStmt struct {
	Text string
}

func (*UnknownStmt) stmtNode() {}
