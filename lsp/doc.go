// Package lsp is a Language Server Protocol server for ldoc documents.
//
// It publishes parse diagnostics and record validation errors, answers
// hover and completion requests from the schema and rule table, provides
// semantic tokens and formats documents by renumbering their records.
//
//	srv := lsp.NewServer(logger)
//	err := srv.Serve(ctx, os.Stdin, os.Stdout)
package lsp
