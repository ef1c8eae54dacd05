// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"quorlin/internal/config"
	"quorlin/internal/lsp"
)

const lsName = "quorlin-ir"

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	cfg := config.Default()
	cfg.ApplyEnv()
	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())
	log := commonlog.GetLogger("quorlin.lsp")

	h := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentFormatting:         h.TextDocumentFormatting,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	// stdio transport, debug logging of the protocol off
	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
