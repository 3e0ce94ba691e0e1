// Package instruments drives the Xcode Instruments command line tools.
//
// Two incompatible generations of the tools exist. macOS 10.15 and later
// ship "xcrun xctrace"; older releases ship "/usr/bin/instruments". [Detect]
// selects one [Tool] per run and every other operation dispatches on it:
//
//	tool, err := instruments.Detect(ctx, sys)
//	catalog, err := instruments.ListTemplates(ctx, sys, tool)
//	cmd := instruments.BuildCommand(tool, req, tty)
//	trace, err := instruments.Run(ctx, sys, cmd, req.Output)
//
// All host interaction goes through [proc.System], so the parsers and
// builders here can be tested with canned tool output.
package instruments
