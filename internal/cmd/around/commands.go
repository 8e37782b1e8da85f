package around

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/5hraddha/around/internal/around/app"
	"github.com/5hraddha/around/internal/around/entity"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
	"github.com/5hraddha/around/internal/platform/i18n"
)

// errNoToken reports a login whose response carried no token.
var errNoToken = errors.New("login response carried no token")

type command struct {
	name    string
	usage   string
	summary string
	args    int
	// protected commands need a restored session.
	protected bool
	run       func(r *runner, ctx context.Context, args []string) error
}

var commandTable = []command{
	{name: "status", usage: "status", summary: "Show the session and header state", run: (*runner).status},
	{name: "register", usage: "register <email> <password>", summary: "Create an account", args: 2, run: (*runner).register},
	{name: "login", usage: "login <email> <password>", summary: "Log in and store the token", args: 2, run: (*runner).login},
	{name: "logout", usage: "logout", summary: "Forget the stored token", run: (*runner).logout},
	{name: "cards", usage: "cards", summary: "List cards, newest first", protected: true, run: (*runner).cards},
	{name: "add", usage: "add <name> <link>", summary: "Add a place card", args: 2, protected: true, run: (*runner).add},
	{name: "like", usage: "like <card-id>", summary: "Toggle your like on a card", args: 1, protected: true, run: (*runner).like},
	{name: "delete", usage: "delete <card-id>", summary: "Delete one of your cards", args: 1, protected: true, run: (*runner).delete},
	{name: "profile", usage: "profile", summary: "Show your profile", protected: true, run: (*runner).profile},
	{name: "edit-profile", usage: "edit-profile <name> <about>", summary: "Change your name and description", args: 2, protected: true, run: (*runner).editProfile},
	{name: "avatar", usage: "avatar <url>", summary: "Change your avatar", args: 1, protected: true, run: (*runner).avatar},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commandTable {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// runner drives the App the way the page does: open the popup, type into
// the fields, submit.
type runner struct {
	app    *app.App
	out    io.Writer
	locale string
}

func (r *runner) text(key string, args ...any) string {
	return i18n.Localize(i18n.Printer(r.locale), key, args...)
}

func (r *runner) notLoggedIn(op string) error {
	return apperrors.EK(apperrors.KindUnauthorized, op, i18n.KeyNotLoggedIn, r.text(i18n.KeyNotLoggedIn))
}

func (r *runner) status(context.Context, []string) error {
	view := r.app.HeaderView()
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	if view.LoggedIn {
		fmt.Fprintf(w, "session:\tlogged in as %s\n", view.Email)
		if claims, ok := r.app.Session.Claims(); ok && !claims.ExpiresAt.IsZero() {
			expires := claims.ExpiresAt.UTC().Format("2006-01-02 15:04:05Z")
			if claims.Expired(time.Now()) {
				expires += " (expired)"
			}
			fmt.Fprintf(w, "expires:\t%s\n", expires)
		}
	} else {
		fmt.Fprintf(w, "session:\tlogged out\n")
	}
	fmt.Fprintf(w, "route:\t%s\n", r.app.Session.Router().Current())
	fmt.Fprintf(w, "header:\t%s\n", view.LinkText)
	fmt.Fprintf(w, "cards:\t%d\n", len(r.app.Store.Cards()))
	if name := r.app.Store.Profile().Name; name != "" {
		fmt.Fprintf(w, "profile:\t%s\n", name)
	}
	return w.Flush()
}

func (r *runner) register(ctx context.Context, args []string) error {
	r.app.ShowRegister()
	r.app.Register.Input(app.RegisterEmail, args[0])
	r.app.Register.Input(app.RegisterPassword, args[1])
	if err := r.app.SubmitRegister(ctx); err != nil {
		if apperrors.IsKind(err, apperrors.KindValidation) {
			return err
		}
		fmt.Fprintln(r.out, r.app.TooltipText(false))
		return err
	}
	fmt.Fprintln(r.out, r.app.TooltipText(true))
	return nil
}

func (r *runner) login(ctx context.Context, args []string) error {
	r.app.ShowLogin()
	r.app.Login.Input(app.LoginEmail, args[0])
	r.app.Login.Input(app.LoginPassword, args[1])
	ok, err := r.app.SubmitLogin(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errNoToken
	}
	fmt.Fprintf(r.out, "logged in as %s\n", r.app.Session.Email())
	return nil
}

func (r *runner) logout(ctx context.Context, _ []string) error {
	if err := r.app.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.text(i18n.KeyLoggedOut))
	return nil
}

func (r *runner) cards(context.Context, []string) error {
	me := r.app.Store.CurrentUserID()
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLIKES\tMINE\tIMAGE")
	for _, card := range r.app.Store.Cards() {
		writeCard(w, card, me)
	}
	return w.Flush()
}

func (r *runner) add(ctx context.Context, args []string) error {
	r.app.AddPlace.Open()
	r.app.AddPlace.Input(app.PlaceName, args[0])
	r.app.AddPlace.Input(app.PlaceLink, args[1])
	if err := r.app.AddPlace.Submit(ctx); err != nil {
		return err
	}
	cards := r.app.Store.Cards()
	if len(cards) == 0 {
		return nil
	}
	return r.printCard(cards[0])
}

func (r *runner) like(ctx context.Context, args []string) error {
	card, err := r.app.ToggleLike(ctx, args[0])
	if err != nil {
		return err
	}
	return r.printCard(card)
}

func (r *runner) delete(ctx context.Context, args []string) error {
	if err := r.app.AskDelete(args[0]); err != nil {
		return err
	}
	if err := r.app.ConfirmDelete(ctx); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "deleted %s\n", strings.TrimSpace(args[0]))
	return nil
}

func (r *runner) profile(context.Context, []string) error {
	p := r.app.Store.Profile()
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id:\t%s\n", p.ID)
	fmt.Fprintf(w, "name:\t%s\n", p.Name)
	fmt.Fprintf(w, "about:\t%s\n", p.About)
	fmt.Fprintf(w, "avatar:\t%s\n", p.AvatarURL)
	return w.Flush()
}

func (r *runner) editProfile(ctx context.Context, args []string) error {
	r.app.Profile.Open()
	r.app.Profile.Input(app.ProfileName, args[0])
	r.app.Profile.Input(app.ProfileAbout, args[1])
	if err := r.app.Profile.Submit(ctx); err != nil {
		return err
	}
	return r.profile(ctx, nil)
}

func (r *runner) avatar(ctx context.Context, args []string) error {
	r.app.Avatar.Open()
	r.app.Avatar.Input(app.AvatarLink, args[0])
	if err := r.app.Avatar.Submit(ctx); err != nil {
		return err
	}
	return r.profile(ctx, nil)
}

func (r *runner) printCard(card *entity.Card) error {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	writeCard(w, card, r.app.Store.CurrentUserID())
	return w.Flush()
}

func writeCard(w io.Writer, card *entity.Card, me entity.UserID) {
	likes := fmt.Sprintf("%d", card.LikeCount())
	if card.LikedByUser(me) {
		likes += " (you)"
	}
	mine := ""
	if card.OwnedBy(me) {
		mine = "yes"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", card.ID, card.Name, likes, mine, card.ImageURL)
}
