package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noah-isme/studio-api/internal/dashboard"
	"github.com/noah-isme/studio-api/internal/models"
	"github.com/noah-isme/studio-api/internal/summary"
)

func newStudentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "students", Short: "Student records"}

	var search, status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List students matching a filter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := a.table("ID\tNOME\tEMAIL\tTELEFONE\tSTATUS\tPLANO\tCADASTRO")
			for _, s := range a.store.FilteredStudents(search, status) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Email, s.Phone, s.Status, s.Plan, s.CreatedAt.Format("02/01/2006"))
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&search, "search", "", "match name or email")
	list.Flags().StringVar(&status, "status", summary.StatusAll, "Todos, Ativo, Inativo or Experimental")

	var form dashboard.StudentForm
	var formStatus string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a student",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.Status = models.StudentStatus(formStatus)
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.store.SaveStudent(ctx, 0, form); err != nil {
				return err
			}
			a.done("Aluno cadastrado com sucesso!")
			return nil
		},
	}
	studentFormFlags(add, &form, &formStatus)
	_ = add.MarkFlagRequired("name")

	var edits dashboard.StudentForm
	var editStatus string
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a student; omitted flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, ok := findStudent(a.store, id)
			if !ok {
				return fmt.Errorf("aluno %d não encontrado", id)
			}
			form := dashboard.StudentForm{Name: current.Name, Email: current.Email, Phone: current.Phone, Status: current.Status, Plan: current.Plan}
			flags := cmd.Flags()
			if flags.Changed("name") {
				form.Name = edits.Name
			}
			if flags.Changed("email") {
				form.Email = edits.Email
			}
			if flags.Changed("phone") {
				form.Phone = edits.Phone
			}
			if flags.Changed("plan") {
				form.Plan = edits.Plan
			}
			if flags.Changed("status") {
				form.Status = models.StudentStatus(editStatus)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.store.SaveStudent(ctx, id, form); err != nil {
				return err
			}
			a.done("Aluno atualizado com sucesso!")
			return nil
		},
	}
	studentFormFlags(edit, &edits, &editStatus)

	deactivate := &cobra.Command{
		Use:   "deactivate ID",
		Short: "Mark a student Inativo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.store.DeactivateStudent(ctx, id); err != nil {
				return err
			}
			a.done("Aluno desativado com sucesso!")
			return nil
		},
	}

	cmd.AddCommand(list, add, edit, deactivate)
	return cmd
}

func studentFormFlags(cmd *cobra.Command, form *dashboard.StudentForm, status *string) {
	cmd.Flags().StringVar(&form.Name, "name", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&form.Plan, "plan", "Mensal", "plan name")
	cmd.Flags().StringVar(status, "status", string(models.StudentStatusActive), "Ativo, Inativo or Experimental")
}

func findStudent(store *dashboard.Store, id int64) (models.Student, bool) {
	for _, s := range store.Snapshot().Students {
		if s.ID == id {
			return s, true
		}
	}
	return models.Student{}, false
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
