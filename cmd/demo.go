package main

import (
	"errors"
	"fmt"
	"io"

	"astronaut-schedule/internal/domain"
	"astronaut-schedule/internal/logx"
	"astronaut-schedule/internal/service"
	"astronaut-schedule/internal/store"
	"astronaut-schedule/internal/store/memory"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through a sample day",
	Long:  `Build a fresh timeline, add and remove a few tasks, and show a conflict being rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.OutOrStdout())
	},
}

func runDemo(w io.Writer) error {
	s := memory.New(store.ObserverFunc(func(attempted, existing domain.Task) {
		fmt.Fprintf(w, "Conflict detected with task: %s\n", attempted.Description())
	}))

	svc, err := service.New(s, logx.Nop())
	if err != nil {
		return err
	}

	steps := []struct {
		description, start, end, priority string
	}{
		{"Morning Exercise", "07:00", "08:00", "High"},
		{"Team Meeting", "09:00", "10:00", "Medium"},
	}
	for _, st := range steps {
		if _, err := svc.CreateTask(st.description, st.start, st.end, st.priority); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "Current Tasks:")
	printTasks(w, svc.ListTasks())

	if err := svc.RemoveTask("Morning Exercise"); err != nil {
		return err
	}
	if _, err := svc.CreateTask("Lunch Break", "12:00", "13:00", "Low"); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Updated Tasks:")
	printTasks(w, svc.ListTasks())

	_, err = svc.CreateTask("Training Session", "09:30", "10:30", "High")
	if !errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("expected a conflict, got %v", err)
	}
	fmt.Fprintf(w, "Error: %v\n", err)

	return nil
}

func printTasks(w io.Writer, tasks []domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks scheduled.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, t)
	}
}
