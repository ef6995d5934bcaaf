package main

import (
	"fmt"
	"os"

	glspserver "github.com/tliron/glsp/server"

	"github.com/spf13/cobra"

	"github.com/aster-lang/aster-ls/internal/lspserver"
	"github.com/aster-lang/aster-ls/internal/logging"
)

const version = "0.1.0"

var (
	tcpMode   bool
	tcpPort   int
	verbosity int
	logDir    string
)

var rootCmd = &cobra.Command{
	Use:   "aster-ls",
	Short: "Language Server Protocol implementation for Aster",
	Long:  "aster-ls speaks the Language Server Protocol over stdio or TCP, offering diagnostics, go-to-definition and member-access completion for Aster source files.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("aster-ls version %s\n", version)
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&tcpMode, "tcp", false, "run in TCP mode instead of stdio")
	serveCmd.Flags().IntVar(&tcpPort, "port", 8765, "TCP port to listen on (used with --tcp)")
	serveCmd.Flags().IntVar(&verbosity, "verbosity", 1, "commonlog verbosity level")
	serveCmd.Flags().StringVar(&logDir, "log-dir", "", "directory for the server's log file (default: OS temp dir)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := logging.Setup(verbosity, logDir)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	srv := lspserver.New(logger)
	handler := lspserver.Handler(srv)

	glspServer := glspserver.NewServer(&handler, "aster-ls", false)

	if tcpMode {
		return glspServer.RunTCP(fmt.Sprintf("127.0.0.1:%d", tcpPort))
	}
	return glspServer.RunStdio()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
