package main

import (
	"fmt"

	"astronaut-schedule/internal/config"
	"astronaut-schedule/internal/importer"
	"astronaut-schedule/internal/service"
	"astronaut-schedule/internal/store/memory"

	"github.com/spf13/cobra"
)

var importStrict bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Check a schedule file",
	Long:  `Validate a JSON schedule file, apply it to an empty timeline and print the result.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importStrict, "strict", false, "Fail if any entry is rejected")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	f, err := importer.Load(args[0])
	if err != nil {
		return err
	}

	svc, err := service.New(memory.New(), log)
	if err != nil {
		return err
	}

	res := importer.Apply(svc, f)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Imported %d of %d tasks:\n", len(res.Added), len(f.Tasks))
	printTasks(out, svc.ListTasks())

	if len(res.Failed) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Rejected:")
		for _, e := range res.Failed {
			fmt.Fprintf(out, "  %v\n", e)
		}
		if importStrict {
			return fmt.Errorf("%d entries rejected", len(res.Failed))
		}
	}
	return nil
}
