package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Parse a Quill source file and report diagnostics."`
	Tokens TokensCmd `cmd:"" help:"Dump the token stream for a Quill source file."`
	Parse  ParseCmd  `cmd:"" help:"Parse a Quill source file and dump its AST."`
	Format FormatCmd `cmd:"" name:"fmt" help:"Reprint a Quill source file from its AST."`
}
