package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"author-registry/internal/domains/author"
	"author-registry/internal/shared/utils"
)

var errUsage = errors.New("invalid usage")

type app struct {
	svc    author.Service
	out    io.Writer
	errOut io.Writer
}

type command func(ctx context.Context, args []string) error

func (a *app) dispatch(ctx context.Context, args []string) int {
	commands := map[string]command{
		"create":   a.create,
		"get":      a.get,
		"find":     a.find,
		"update":   a.update,
		"activate": a.activate,
		"delete":   a.delete,
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err := cmd(ctx, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(a.errOut, "%v\n\n%s", err, usage)
			return 2
		}
		fmt.Fprintf(a.errOut, "%s: %v\n", author.ToErrorCode(err), err)
		return 1
	}
	return 0
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := newFlagSet("create")
	req := &author.RegisterAuthorRequest{}
	fs.StringVar(&req.Username, "username", "", "author username")
	fs.StringVar(&req.Email, "email", "", "author email")
	fs.StringVar(&req.Password, "password", "", "plain password, stored as an argon2id hash")
	fs.StringVar(&req.AvatarURL, "avatar", "", "avatar url")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("%w: create takes no arguments", errUsage)
	}

	au, token, err := a.svc.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.errOut, "activation token: %s\n", token)
	return a.print(au)
}

func (a *app) get(ctx context.Context, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}

	au, err := a.svc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return a.print(au)
}

func (a *app) find(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: find takes exactly one search term", errUsage)
	}

	authors, err := a.svc.Search(ctx, args[0])
	if err != nil {
		return err
	}
	return a.print(author.ToResponses(authors))
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := newFlagSet("update")
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email")
	avatar := fs.String("avatar", "", "new avatar url")
	password := fs.String("password", "", "new plain password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	id, err := singleID(fs.Args())
	if err != nil {
		return err
	}

	// only flags given on the command line are applied
	req := &author.UpdateAuthorRequest{}
	if fs.Changed("username") {
		req.Username = username
	}
	if fs.Changed("email") {
		req.Email = email
	}
	if fs.Changed("avatar") {
		req.AvatarURL = avatar
	}
	if fs.Changed("password") {
		req.Password = password
	}

	au, err := a.svc.Update(ctx, id, req)
	if err != nil {
		return err
	}
	return a.print(au)
}

func (a *app) activate(ctx context.Context, args []string) error {
	fs := newFlagSet("activate")
	token := fs.String("token", "", "activation token issued at create")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	id, err := singleID(fs.Args())
	if err != nil {
		return err
	}

	au, err := a.svc.Activate(ctx, id, *token)
	if err != nil {
		return err
	}
	return a.print(au)
}

func (a *app) delete(ctx context.Context, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}
	return a.svc.Delete(ctx, id)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func singleID(args []string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, fmt.Errorf("%w: expected exactly one author id", errUsage)
	}
	return utils.ParseIdentifier(args[0])
}
