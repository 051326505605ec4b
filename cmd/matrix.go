package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/regulomics/rmatgen"
	"github.com/regulomics/rmatgen/internal/gen"
	"github.com/regulomics/rmatgen/internal/matrix"
	"github.com/regulomics/rmatgen/report"
	"github.com/regulomics/rmatgen/scanner"
)

var (
	matrixOutPath string
	htmlOutPath   string
	watchMode     bool
)

var matrixCmd = &cobra.Command{
	Use:   "matrix [rules files...]",
	Short: "Assemble the R-matrix from rules files and write it as TSV",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide rules files or directories")
			os.Exit(1)
		}

		paths, err := expandPaths(args)
		if err != nil {
			logger.Fatal("Failed to collect rules files", zap.Error(err))
		}
		if len(paths) == 0 {
			fmt.Println("error: No rules files found")
			os.Exit(1)
		}

		g, err := rmatgen.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize generator", zap.Error(err))
		}

		if watchMode {
			runWatchMode(logger, g, paths)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := generateMatrix(ctx, logger, g, paths); err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	matrixCmd.Flags().StringVarP(&matrixOutPath, "output", "o", "", "Output path for the TSV matrix (default stdout)")
	matrixCmd.Flags().StringVar(&htmlOutPath, "html", "", "Also write an HTML report to this path")
	matrixCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Regenerate the matrix whenever a rules file changes")
}

// expandPaths resolves directory arguments into the rules files they
// contain; file arguments pass through unchanged.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := scanner.New(arg).Scan()
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}

func generateMatrix(ctx context.Context, logger *zap.Logger, g *gen.Generator, paths []string) error {
	m, err := rmatgen.ProcessFiles(ctx, logger, g, paths)
	if err != nil {
		printDiagnostic("", "", err)
		return err
	}
	return writeMatrix(m)
}

func writeMatrix(m *matrix.Matrix) error {
	if htmlOutPath != "" {
		if err := writeHTMLReport(m); err != nil {
			logger.Error("Error writing HTML report", zap.Error(err))
			return err
		}
	}

	if matrixOutPath == "" {
		return m.WriteTSV(os.Stdout)
	}

	f, err := os.Create(matrixOutPath)
	if err != nil {
		logger.Error("Error creating TSV output file", zap.Error(err))
		return err
	}
	defer f.Close()

	if err := m.WriteTSV(f); err != nil {
		logger.Error("Error writing TSV output file", zap.Error(err))
		return err
	}
	return nil
}

func writeHTMLReport(m *matrix.Matrix) error {
	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}

	f, err := os.Create(htmlOutPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return renderer.Render(f, "R-matrix", m)
}

// runWatchMode regenerates the matrix on every change to a rules file until
// interrupted. A broken rule is reported but does not end the watch.
func runWatchMode(logger *zap.Logger, g *gen.Generator, paths []string) {
	regenerate := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = generateMatrix(ctx, logger, g, paths)
	}

	regenerate()

	if err := g.StartWatching(paths, func(string) { regenerate() }); err != nil {
		logger.Fatal("Failed to start watching", zap.Error(err))
	}
	defer g.StopWatching()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Stopping watch mode", zap.String("signal", sig.String()))
}
