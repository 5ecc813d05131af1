package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/aussiebroadwan/passman/internal/vault/service"
	"github.com/aussiebroadwan/passman/pkg/cryptox"
	"github.com/aussiebroadwan/passman/pkg/slogx"
)

const generatedLength = 16

// clearMarker typed at an edit prompt empties an optional field.
const clearMarker = "-"

// Accounts is the account surface the REPL needs. *service.AccountService
// satisfies it.
type Accounts interface {
	Exists(ctx context.Context) (bool, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, draft domain.AccountDraft) (domain.User, error)
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
}

// Vault is the credential surface the REPL needs. *service.VaultService
// satisfies it.
type Vault interface {
	AddRecord(ctx context.Context, s domain.Session, d domain.CredentialDraft) (domain.Credential, error)
	ListAll(ctx context.Context, s domain.Session, filter string) (iter.Seq[domain.Credential], error)
	Count(ctx context.Context, s domain.Session) (int64, error)
	UpdateRecord(ctx context.Context, s domain.Session, id string, d domain.CredentialDraft) (domain.Credential, error)
	DeleteRecord(ctx context.Context, s domain.Session, id string) error
}

// REPL is the interactive menu loop in front of the vault services.
type REPL struct {
	accounts Accounts
	auth     Authenticator
	vault    Vault

	in  *Prompter
	out io.Writer
	st  styles

	// clip puts text on the system clipboard.
	clip func(string) error

	session domain.Session
}

func New(accounts Accounts, auth Authenticator, vault Vault, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		accounts: accounts,
		auth:     auth,
		vault:    vault,
		in:       NewPrompter(in, out),
		out:      out,
		st:       newStyles(out),
		clip:     clipboard.WriteAll,
	}
}

// Session returns the identity the REPL is currently logged in as.
func (r *REPL) Session() domain.Session { return r.session }

// Run logs the operator in and serves the menu until they quit or input
// ends. Only unexpected storage failures are returned.
func (r *REPL) Run(ctx context.Context) error {
	err := r.start(ctx)
	if err == nil {
		ctx = slogx.WithUser(ctx, r.session.Username())
		err = r.menu(ctx)
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(r.out)
		return nil
	}
	return err
}

// start forces creation of the first account on an empty vault, otherwise
// asks for credentials until a login succeeds.
func (r *REPL) start(ctx context.Context) error {
	exists, err := r.accounts.Exists(ctx)
	if err != nil {
		return err
	}

	if !exists {
		fmt.Fprintln(r.out, r.st.title.Render("Welcome to passman"))
		fmt.Fprintln(r.out, "No accounts exist yet. Create one to get started.")
		for {
			user, ok, err := r.createAccount(ctx)
			if err != nil {
				return err
			}
			if ok {
				r.session = domain.NewSession(user)
				return nil
			}
		}
	}

	for {
		username, err := r.in.Line("Username")
		if err != nil {
			return err
		}
		password, err := r.in.Secret("Master password")
		if err != nil {
			return err
		}

		session, err := r.auth.Login(ctx, username, password)
		switch {
		case err == nil:
			r.session = session
			fmt.Fprintln(r.out, r.st.ok.Render("Welcome, "+session.Username()))
			return nil
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidCredentials):
			fmt.Fprintln(r.out, r.st.err.Render("Invalid username or password"))
		case errors.Is(err, service.ErrTooManyAttempts):
			fmt.Fprintln(r.out, r.st.err.Render("Too many login attempts, try again later"))
		default:
			return err
		}
	}
}

func (r *REPL) menu(ctx context.Context) error {
	for {
		status, err := r.status(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.st.title.Render("passman")+r.st.muted.Render(" "+status))
		fmt.Fprintln(r.out, "  a) Add a password     v) View all passwords")
		fmt.Fprintln(r.out, "  s) Search passwords   e) Edit a password")
		fmt.Fprintln(r.out, "  d) Delete a password  c) Create a user")
		fmt.Fprintln(r.out, "  g) Generate password  q) Quit")

		choice, err := r.in.Line("Choice")
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "a":
			err = r.add(ctx)
		case "v":
			err = r.browse(ctx, "")
		case "s":
			var filter string
			filter, err = r.in.Line("Application contains")
			if err == nil {
				err = r.browse(ctx, filter)
			}
		case "e":
			err = r.edit(ctx)
		case "d":
			err = r.remove(ctx)
		case "c":
			var user domain.User
			var ok bool
			user, ok, err = r.createAccount(ctx)
			if ok {
				fmt.Fprintln(r.out, r.st.ok.Render("Created user "+user.Username))
			}
		case "g":
			err = r.generate()
		case "q":
			fmt.Fprintln(r.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(r.out, r.st.err.Render("Unknown choice "+strconv.Quote(choice)))
		}
		if err != nil {
			return err
		}
	}
}

// status summarises who is logged in and how much the vault holds.
func (r *REPL) status(ctx context.Context) (string, error) {
	records, err := r.vault.Count(ctx, r.session)
	if err != nil {
		return "", err
	}
	users, err := r.accounts.Count(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s, %s, %s)", r.session.Username(),
		plural(records, "password"), plural(users, "user")), nil
}

func plural(n int64, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// createAccount reports ok=false when validation rejected the input; the
// reasons have already been printed.
func (r *REPL) createAccount(ctx context.Context) (domain.User, bool, error) {
	var d domain.AccountDraft
	var err error

	if d.Username, err = r.in.Line("New username"); err != nil {
		return domain.User{}, false, err
	}
	if d.Password, err = r.in.Secret("Master password"); err != nil {
		return domain.User{}, false, err
	}
	if d.Confirmation, err = r.in.Secret("Confirm master password"); err != nil {
		return domain.User{}, false, err
	}

	user, err := r.accounts.Create(ctx, d)
	if ve, ok := domain.AsValidation(err); ok {
		fmt.Fprintln(r.out, r.st.err.Render("Could not create the account:"))
		renderReasons(r.out, r.st, ve)
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

func (r *REPL) add(ctx context.Context) error {
	var d domain.CredentialDraft
	var err error

	if d.Application, err = r.in.Line("Application"); err != nil {
		return err
	}
	if d.Login, err = r.in.Line("Login"); err != nil {
		return err
	}
	if d.Secret, err = r.in.Secret("Password"); err != nil {
		return err
	}
	if d.Confirmation, err = r.in.Secret("Confirm password"); err != nil {
		return err
	}
	if d.Notes, err = r.in.Line("Notes (optional)"); err != nil {
		return err
	}

	if ve := d.Validate(); ve.Err() != nil {
		fmt.Fprintln(r.out, r.st.err.Render("Password not saved:"))
		renderReasons(r.out, r.st, ve)
		return nil
	}

	save, err := r.in.Confirm("Save password?", true)
	if err != nil {
		return err
	}
	if !save {
		fmt.Fprintln(r.out, r.st.muted.Render("Discarded."))
		return nil
	}

	_, err = r.vault.AddRecord(ctx, r.session, d)
	if ve, ok := domain.AsValidation(err); ok {
		fmt.Fprintln(r.out, r.st.err.Render("Password not saved:"))
		renderReasons(r.out, r.st, ve)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.st.ok.Render("Saved."))
	return nil
}

// browse pages through the matching records one at a time.
func (r *REPL) browse(ctx context.Context, filter string) error {
	records, err := r.vault.ListAll(ctx, r.session, filter)
	if err != nil {
		return err
	}

	shown := 0
	for c := range records {
		shown++
		fmt.Fprintln(r.out)
		renderRecord(r.out, r.st, c)

		next := false
		for !next {
			choice, err := r.in.Line("[n]ext, [c]opy password, [q]uit")
			if err != nil {
				return err
			}
			switch strings.ToLower(choice) {
			case "n", "":
				next = true
			case "c":
				if err := r.clip(c.Secret); err != nil {
					slogx.FromContext(ctx).Warn("clipboard unavailable", slog.Any("error", err))
					fmt.Fprintln(r.out, r.st.err.Render("Clipboard unavailable"))
				} else {
					fmt.Fprintln(r.out, r.st.ok.Render("Copied to clipboard"))
				}
			case "q":
				return nil
			}
		}
	}

	if shown == 0 {
		fmt.Fprintln(r.out, r.st.muted.Render("No passwords found."))
	} else {
		fmt.Fprintln(r.out, r.st.muted.Render("End of list."))
	}
	return nil
}

// pick lists the visible records numbered from 1 and returns the chosen
// one. ok is false when nothing was chosen.
func (r *REPL) pick(ctx context.Context) (domain.Credential, bool, error) {
	seq, err := r.vault.ListAll(ctx, r.session, "")
	if err != nil {
		return domain.Credential{}, false, err
	}
	records := slices.Collect(seq)
	if len(records) == 0 {
		fmt.Fprintln(r.out, r.st.muted.Render("No passwords found."))
		return domain.Credential{}, false, nil
	}

	for i, c := range records {
		fmt.Fprintf(r.out, "  %d) %s %s\n", i+1, c.Application, r.st.muted.Render("("+c.Login+")"))
	}
	answer, err := r.in.Line("Number (blank to cancel)")
	if err != nil || answer == "" {
		return domain.Credential{}, false, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(records) {
		fmt.Fprintln(r.out, r.st.err.Render("No such entry"))
		return domain.Credential{}, false, nil
	}
	return records[n-1], true, nil
}

func (r *REPL) edit(ctx context.Context) error {
	c, ok, err := r.pick(ctx)
	if err != nil || !ok {
		return err
	}

	keep := func(prompt, current string) (string, error) {
		v, err := r.in.Line(fmt.Sprintf("%s [%s]", prompt, current))
		if err != nil || v == "" {
			return current, err
		}
		return v, nil
	}

	d := domain.CredentialDraft{}
	if d.Application, err = keep("Application", c.Application); err != nil {
		return err
	}
	if d.Login, err = keep("Login", c.Login); err != nil {
		return err
	}
	if d.Secret, err = r.in.Secret("New password (blank keeps current)"); err != nil {
		return err
	}
	if d.Secret == "" {
		d.Secret, d.Confirmation = c.Secret, c.Secret
	} else if d.Confirmation, err = r.in.Secret("Confirm password"); err != nil {
		return err
	}
	if d.Notes, err = keep("Notes ("+clearMarker+" clears)", c.Notes); err != nil {
		return err
	}
	if d.Notes == clearMarker {
		d.Notes = ""
	}

	_, err = r.vault.UpdateRecord(ctx, r.session, c.ID, d)
	return r.report(err, "Updated.")
}

func (r *REPL) remove(ctx context.Context) error {
	c, ok, err := r.pick(ctx)
	if err != nil || !ok {
		return err
	}

	sure, err := r.in.Confirm("Delete "+c.Application+"?", false)
	if err != nil || !sure {
		return err
	}
	return r.report(r.vault.DeleteRecord(ctx, r.session, c.ID), "Deleted.")
}

// report prints the outcome of a change. Errors the operator can act on
// are printed; anything else is returned.
func (r *REPL) report(err error, success string) error {
	if ve, ok := domain.AsValidation(err); ok {
		fmt.Fprintln(r.out, r.st.err.Render("Nothing changed:"))
		renderReasons(r.out, r.st, ve)
		return nil
	}
	switch {
	case err == nil:
		fmt.Fprintln(r.out, r.st.ok.Render(success))
	case errors.Is(err, service.ErrForbidden):
		fmt.Fprintln(r.out, r.st.err.Render("Only the owner can change this password"))
	case errors.Is(err, service.ErrRecordNotFound):
		fmt.Fprintln(r.out, r.st.err.Render("That password no longer exists"))
	default:
		return err
	}
	return nil
}

func (r *REPL) generate() error {
	pw, err := cryptox.GeneratePassword(generatedLength)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.st.label.Render("Generated: ")+pw)

	copyIt, err := r.in.Confirm("Copy to clipboard?", false)
	if err != nil || !copyIt {
		return err
	}
	if err := r.clip(pw); err != nil {
		fmt.Fprintln(r.out, r.st.err.Render("Clipboard unavailable"))
		return nil
	}
	fmt.Fprintln(r.out, r.st.ok.Render("Copied to clipboard"))
	return nil
}
