package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"tourdesk/internal/client"
	"tourdesk/internal/convert"
	"tourdesk/internal/editor"
	"tourdesk/internal/models/form_models"
	"tourdesk/internal/schema"
	"tourdesk/pkg/utils"
)

func logger(c *cli.Context) *zap.Logger {
	if !c.Bool("verbose") {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func newClient(c *cli.Context) *client.TourClient {
	return client.NewTourClient(c.String("api"), c.String("token"), c.Duration("timeout"), logger(c))
}

func newSession(c *cli.Context, tc *client.TourClient) *editor.Session {
	return editor.NewSession(tc,
		editor.WithPolicy(editor.ActivityPolicy{NestedActivitiesAvailable: c.Bool("nested-activities")}),
		editor.WithLogger(logger(c)),
	)
}

func readInput(c *cli.Context) ([]byte, error) {
	path := c.String("file")
	if path == "-" {
		return io.ReadAll(c.App.Reader)
	}
	return os.ReadFile(path)
}

// readForm parses the tour file into an edit form.
func readForm(c *cli.Context) (*form_models.TourForm, error) {
	raw, err := readInput(c)
	if err != nil {
		return nil, err
	}
	payload, err := schema.ParseTour(raw)
	if err != nil {
		return nil, err
	}
	return convert.ToEditForm(*payload)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printProblems lists field errors from local validation or from the backend.
func printProblems(w io.Writer, err error) {
	if fe, ok := schema.AsFieldErrors(err); ok {
		for _, e := range fe {
			fmt.Fprintf(w, "  %s: %s\n", displayPath(e.Path), e.Message)
		}
		return
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		fmt.Fprintf(w, "  %s\n", apiErr.Message)
		for _, e := range apiErr.Fields {
			fmt.Fprintf(w, "  %s: %s\n", displayPath(e.Path), e.Message)
		}
		return
	}
	fmt.Fprintf(w, "  %v\n", err)
}

func displayPath(p string) string {
	if p == "" {
		return "(tour)"
	}
	return p
}

func validateAction(c *cli.Context) error {
	raw, err := readInput(c)
	if err != nil {
		return err
	}
	if _, err := schema.ParseTour(raw); err != nil {
		fmt.Fprintln(c.App.Writer, "Tour is invalid:")
		printProblems(c.App.Writer, err)
		return cli.Exit("", 1)
	}
	fmt.Fprintln(c.App.Writer, "Tour is valid")
	return nil
}

func showAction(c *cli.Context) error {
	tour, err := newClient(c).FetchTour(c.Context, c.String("id"))
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, tour)
}

func createAction(c *cli.Context) error {
	form, err := readForm(c)
	if err != nil {
		fmt.Fprintln(c.App.Writer, "Tour is invalid:")
		printProblems(c.App.Writer, err)
		return cli.Exit("", 1)
	}

	session := newSession(c, newClient(c))
	if err := session.Edit(func(f *form_models.TourForm) { *f = *form }); err != nil {
		return err
	}
	return submit(c, session, "created", "create")
}

func updateAction(c *cli.Context) error {
	form, err := readForm(c)
	if err != nil {
		fmt.Fprintln(c.App.Writer, "Tour is invalid:")
		printProblems(c.App.Writer, err)
		return cli.Exit("", 1)
	}

	session := newSession(c, newClient(c))
	if err := session.Load(c.Context, c.String("id")); err != nil {
		return err
	}

	err = session.Edit(func(f *form_models.TourForm) {
		// rows present before the edit keep their identity
		for i := range form.Activities {
			if i < len(f.Activities) {
				form.Activities[i].Key = f.Activities[i].Key
			}
		}
		*f = *form
	})
	if errors.Is(err, editor.ErrActivitiesLocked) {
		return cli.Exit("Activities of an existing tour cannot be added or removed yet", 1)
	}
	if err != nil {
		return err
	}
	return submit(c, session, "updated", "update")
}

func submit(c *cli.Context, session *editor.Session, done, verb string) error {
	req, err := session.Submit(c.Context)
	if err != nil {
		fmt.Fprintf(c.App.Writer, "Failed to %s tour, please try again\n", verb)
		printProblems(c.App.Writer, err)
		return cli.Exit("", 1)
	}
	fmt.Fprintf(c.App.Writer, "%s is %s (id %s)\n", req.Payload.Name, done, session.TourID())
	return nil
}

func deleteAction(c *cli.Context) error {
	id := c.String("id")
	if err := newClient(c).DeleteTour(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Tour %s deleted\n", id)
	return nil
}

func joinAction(c *cli.Context) error {
	raw, err := readInput(c)
	if err != nil {
		return err
	}
	req, err := schema.ParseMemberJoin(raw)
	if err != nil {
		fmt.Fprintln(c.App.Writer, "Members are invalid:")
		printProblems(c.App.Writer, err)
		return cli.Exit("", 1)
	}

	resp, err := newClient(c).JoinTour(c.Context, c.String("id"), *req)
	if err != nil {
		fmt.Fprintln(c.App.Writer, "Failed to join tour, please try again")
		printProblems(c.App.Writer, err)
		return cli.Exit("", 1)
	}
	fmt.Fprintf(c.App.Writer, "%d member(s) joined, %d in total\n", resp.Joined, resp.MemberCount)
	return nil
}

func tokenAction(c *cli.Context, secret string) error {
	if secret == "" {
		return cli.Exit("JWT_SECRET is not set", 1)
	}
	token, err := utils.CreateToken([]byte(secret), c.String("subject"), c.String("role"), c.Duration("ttl"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
