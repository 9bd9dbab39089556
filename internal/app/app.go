package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/osse101/onsenkatsu/internal/accessory"
	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/companion"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/logger"
	"github.com/osse101/onsenkatsu/internal/metrics"
	"github.com/osse101/onsenkatsu/internal/places"
	"github.com/osse101/onsenkatsu/internal/profile"
	"github.com/osse101/onsenkatsu/internal/quest"
	"github.com/osse101/onsenkatsu/internal/screen"
	"github.com/osse101/onsenkatsu/internal/visit"
)

// DefaultEquippedFetchTimeout applies when Options leaves the timeout unset
const DefaultEquippedFetchTimeout = 5 * time.Second

// Authenticator is the part of the auth manager the screens drive
type Authenticator interface {
	auth.Identity
	SignInWithPassword(ctx context.Context, email, password string) (*domain.User, error)
	CompleteOAuth(ctx context.Context, code, verifier string) (*domain.User, error)
	SignOut(ctx context.Context) error
}

// OAuthLinker builds the URL the browser opens to start OAuth sign-in
type OAuthLinker interface {
	AuthorizeURL(provider, redirectTo, challenge string) string
}

// PlaceFinder looks up onsens around the user
type PlaceFinder interface {
	Nearby(ctx context.Context, origin domain.Point) ([]domain.Place, error)
	// NearestOnsen returns nil when the search finds nothing
	NearestOnsen(ctx context.Context, origin domain.Point) (*places.Nearest, error)
	MaxDistance() float64
}

// CallbackWaiter blocks until the OAuth redirect has been handled
type CallbackWaiter func(ctx context.Context, port int, exchange auth.CodeExchanger) (*domain.User, error)

// Services bundles what the screens call into
type Services struct {
	Auth      Authenticator
	OAuth     OAuthLinker
	Profile   profile.Service
	Companion companion.Service
	Accessory accessory.Service
	Quest     quest.Service
	Visit     visit.Service
	Places    PlaceFinder
}

// Options tunes client behaviour
type Options struct {
	EquippedFetchTimeout time.Duration
	// ClientSideExp applies the session increment from the client instead of
	// relying on the backend trigger
	ClientSideExp     bool
	OAuthRedirectURL  string
	OAuthCallbackPort int
	JournalPath       string
}

// App drives the screens from one CLI invocation
type App struct {
	svc     Services
	opts    Options
	store   StateStore
	state   *State
	machine *screen.Machine
	out     io.Writer

	now          func() time.Time
	waitCallback CallbackWaiter
	snapshot     func() ([]metrics.Sample, error)
}

// New loads persisted state; an unreadable state file is replaced by a fresh one
func New(ctx context.Context, svc Services, store StateStore, out io.Writer, opts Options) *App {
	if opts.EquippedFetchTimeout <= 0 {
		opts.EquippedFetchTimeout = DefaultEquippedFetchTimeout
	}

	st, err := store.Load()
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgStateLoadFailed, "error", err)
		st = newState()
	}
	if st.Companion != nil && svc.Companion != nil {
		svc.Companion.Prime(*st.Companion, st.CompanionAt)
	}

	return &App{
		svc:          svc,
		opts:         opts,
		store:        store,
		state:        st,
		machine:      screen.NewMachine(st.Screen),
		out:          out,
		now:          time.Now,
		waitCallback: auth.WaitForCallback,
		snapshot:     metrics.Snapshot,
	}
}

// Screen is the screen the client is on
func (a *App) Screen() screen.Screen {
	return a.machine.Current()
}

// finish persists state and sends auth failures to the auth error screen
func (a *App) finish(ctx context.Context, err error) error {
	if IsAuthFailure(err) {
		logger.FromContext(ctx).Warn(LogMsgAuthErrorScreen, "error", err)
		if goErr := a.machine.Go(screen.AuthError, nil); goErr == nil {
			header(a.out, screen.AuthError)
			fmt.Fprintln(a.out, MsgAuthFailed)
		}
	}

	a.state.Screen = a.machine.Current()
	a.state.UpdatedAt = a.now()
	if saveErr := a.store.Save(a.state); saveErr != nil {
		logger.FromContext(ctx).Error(LogMsgStateSaveFailed, "error", saveErr)
		if err == nil {
			err = saveErr
		}
	}
	return err
}

// enter moves to a screen, passing through Home when there is no direct edge.
// While bathing, the timer only leaves through its own edges.
func (a *App) enter(to screen.Screen, payload screen.Payload) error {
	cur := a.machine.Current()
	if cur == to && payload == nil {
		return nil
	}
	if screen.Allowed(cur, to) {
		return a.machine.Go(to, payload)
	}
	if a.state.Session != nil && cur == screen.Timer {
		return fmt.Errorf("%w: %s -> %s", domain.ErrSessionAlreadyActive, cur, to)
	}
	if screen.Allowed(cur, screen.Home) && screen.Allowed(screen.Home, to) {
		if err := a.machine.Go(screen.Home, nil); err != nil {
			return err
		}
	}
	return a.machine.Go(to, payload)
}

func (a *App) require(s screen.Screen) error {
	if cur := a.machine.Current(); cur != s {
		return fmt.Errorf("%w: expected %s, on %s", domain.ErrInvalidTransition, s, cur)
	}
	return nil
}

// Whoami prints the signed-in user and where the client left off
func (a *App) Whoami(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	user, err := a.svc.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", user.Email, user.ID)
	if p, profErr := a.svc.Profile.Get(ctx); profErr != nil {
		logger.FromContext(ctx).Warn("Failed to load profile", "error", profErr)
	} else if p != nil {
		fmt.Fprintf(a.out, "名前: %s\n", p.Name)
	}
	fmt.Fprintf(a.out, "画面: %s\n", a.machine.Current())
	if s := a.state.Session; s != nil {
		fmt.Fprintf(a.out, "入浴中: %s %s\n", s.PlaceName, visit.FormatElapsed(s.Elapsed(a.now())))
	}
	return nil
}

// LoginWithPassword signs in with email and password
func (a *App) LoginWithPassword(ctx context.Context, email, password string) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	a.machine = screen.NewMachine(screen.Title)
	user, err := a.svc.Auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}
	return a.afterSignIn(ctx, user)
}

// LoginWithOAuth prints the provider URL, hands it to open when set, and
// waits for the loopback redirect
func (a *App) LoginWithOAuth(ctx context.Context, open func(url string) error) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	a.machine = screen.NewMachine(screen.Title)
	pkce, err := auth.NewPKCE()
	if err != nil {
		return err
	}

	url := a.svc.OAuth.AuthorizeURL(auth.DefaultProvider, a.opts.OAuthRedirectURL, pkce.Challenge)
	fmt.Fprintf(a.out, "ブラウザでサインインしてください:\n%s\n", url)
	if open != nil {
		if openErr := open(url); openErr != nil {
			logger.FromContext(ctx).Debug("Could not open browser", "error", openErr)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, OAuthWaitTimeout)
	defer cancel()
	user, err := a.waitCallback(waitCtx, a.opts.OAuthCallbackPort, func(ctx context.Context, code string) (*domain.User, error) {
		return a.svc.Auth.CompleteOAuth(ctx, code, pkce.Verifier)
	})
	if err != nil {
		return err
	}
	return a.afterSignIn(ctx, user)
}

// afterSignIn routes a fresh sign-in: setup when there is no companion yet,
// back to the timer when a session was interrupted, otherwise Home
func (a *App) afterSignIn(ctx context.Context, user *domain.User) error {
	logger.FromContext(ctx).Info(LogMsgSignedIn, "user_id", user.ID)
	fmt.Fprintf(a.out, "%s としてサインインしました\n", user.Email)

	c, err := a.svc.Companion.Refresh(ctx)
	if errors.Is(err, domain.ErrCompanionNotFound) {
		a.state.Companion = nil
		a.state.CompanionAt = time.Time{}
		if err := a.machine.Go(screen.NameInput, nil); err != nil {
			return err
		}
		header(a.out, screen.NameInput)
		fmt.Fprintln(a.out, "はじめまして! `onsen setup <あなたの名前> <パートナーの名前>` で始めましょう")
		return nil
	}
	if err != nil {
		return err
	}

	if a.state.Session != nil {
		if err := a.resumeTimer(); err != nil {
			return err
		}
		a.keepCompanion(c, true)
		renderTimer(a.out, a.state.Session, a.now())
		return nil
	}

	if err := a.machine.Go(screen.Home, nil); err != nil {
		return err
	}
	a.showHome(ctx, c, true)
	return nil
}

// Logout revokes the session and forgets local state
func (a *App) Logout(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.svc.Auth.SignOut(ctx); err != nil {
		return err
	}
	a.state = newState()
	a.machine = screen.NewMachine(screen.Title)
	logger.FromContext(ctx).Info(LogMsgSignedOut)
	fmt.Fprintln(a.out, "サインアウトしました")
	return nil
}

// SetName saves the user's display name and moves on to partner selection
func (a *App) SetName(ctx context.Context, name string) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.NameInput, nil); err != nil {
		return err
	}
	p, err := a.svc.Profile.UpdateName(ctx, name)
	if err != nil {
		return err
	}
	a.state.PendingName = p.Name
	if err := a.machine.Go(screen.CharacterSelect, nil); err != nil {
		return err
	}
	header(a.out, screen.CharacterSelect)
	fmt.Fprintf(a.out, "%s さん、パートナーに名前をつけてください\n", p.Name)
	return nil
}

// ChoosePartner creates the companion and lands on Home
func (a *App) ChoosePartner(ctx context.Context, name string) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.require(screen.CharacterSelect); err != nil {
		return err
	}
	c, err := a.svc.Companion.Create(ctx, name)
	if err != nil {
		return err
	}
	a.state.PendingName = ""
	if err := a.machine.Go(screen.Home, nil); err != nil {
		return err
	}
	a.showHome(ctx, c, true)
	return nil
}

// Home shows the companion and its equipped accessory
func (a *App) Home(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Home, nil); err != nil {
		return err
	}
	c, err := a.svc.Companion.Get(ctx)
	if err != nil {
		return err
	}
	a.showHome(ctx, c, false)
	return nil
}

// Rename renames the companion
func (a *App) Rename(ctx context.Context, name string) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Home, nil); err != nil {
		return err
	}
	c, err := a.svc.Companion.Rename(ctx, name)
	if err != nil {
		return err
	}
	a.showHome(ctx, c, true)
	return nil
}

// Visits lists the most recent bathing sessions
func (a *App) Visits(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Home, nil); err != nil {
		return err
	}
	logs, err := a.svc.Visit.RecentVisits(ctx, RecentVisitsShown)
	if err != nil {
		return err
	}
	renderVisits(a.out, logs)
	return nil
}

func (a *App) showHome(ctx context.Context, c *domain.Companion, fresh bool) {
	a.keepCompanion(c, fresh)
	renderHome(a.out, *c, a.equipped(ctx))
}

// keepCompanion stores the snapshot the next invocation primes its cache
// with. A snapshot that may have come from the cache keeps the time it was
// first read, so priming never extends its life.
func (a *App) keepCompanion(c *domain.Companion, fresh bool) {
	if fresh || a.state.Companion == nil || a.state.CompanionAt.IsZero() {
		a.state.CompanionAt = a.now()
	}
	a.state.Companion = c
}

// equipped fetches the equipped accessory under a soft timeout. Any failure
// renders as no accessory.
func (a *App) equipped(ctx context.Context) *domain.UserAccessory {
	fetchCtx, cancel := context.WithTimeout(ctx, a.opts.EquippedFetchTimeout)
	defer cancel()

	ua, err := a.svc.Accessory.Equipped(fetchCtx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgEquippedUnavailable, "error", err)
		return nil
	}
	return ua
}

// Nearby lists onsens around origin and whether the nearest is close enough
func (a *App) Nearby(ctx context.Context, origin domain.Point) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.LocationCheck, nil); err != nil {
		return err
	}
	list, err := a.svc.Places.Nearby(ctx, origin)
	if err != nil {
		return err
	}
	renderPlaces(a.out, list, a.svc.Places.MaxDistance())
	renderNearest(a.out, places.NearestOf(origin, list, a.svc.Places.MaxDistance()))
	return nil
}

// StartBath starts the timer at placeID, or at the nearest onsen when placeID is empty
func (a *App) StartBath(ctx context.Context, origin domain.Point, placeID string) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if a.state.Session != nil {
		return domain.ErrSessionAlreadyActive
	}
	if err := a.enter(screen.LocationCheck, nil); err != nil {
		return err
	}

	place, err := a.pickPlace(ctx, origin, placeID)
	if err != nil {
		return err
	}

	s, err := visit.StartSession(place, origin, a.svc.Places.MaxDistance(), a.now())
	if err != nil {
		return err
	}
	if err := a.machine.Go(screen.Timer, screen.LocationPayload{Place: place}); err != nil {
		return err
	}
	a.state.Session = s
	logger.FromContext(ctx).Info(LogMsgBathStarted, "place_id", s.PlaceID)
	renderTimer(a.out, s, a.now())
	return nil
}

// pickPlace resolves placeID among nearby onsens, or takes the nearest one
func (a *App) pickPlace(ctx context.Context, origin domain.Point, placeID string) (domain.Place, error) {
	if placeID == "" {
		nearest, err := a.svc.Places.NearestOnsen(ctx, origin)
		if err != nil {
			return domain.Place{}, err
		}
		if nearest == nil {
			fmt.Fprintln(a.out, MsgNoOnsenNearby)
			return domain.Place{}, fmt.Errorf("%w: no onsen nearby", domain.ErrTooFarFromOnsen)
		}
		return nearest.Place, nil
	}

	list, err := a.svc.Places.Nearby(ctx, origin)
	if err != nil {
		return domain.Place{}, err
	}
	for _, p := range list {
		if p.PlaceID == placeID {
			return p, nil
		}
	}
	return domain.Place{}, fmt.Errorf("%w: place %s is not among nearby onsens", domain.ErrInvalidInput, placeID)
}

// BathStatus shows the running timer
func (a *App) BathStatus(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if a.state.Session == nil {
		return domain.ErrNoActiveSession
	}
	if err := a.resumeTimer(); err != nil {
		return err
	}
	renderTimer(a.out, a.state.Session, a.now())
	return nil
}

// CancelBath drops the running session without logging it
func (a *App) CancelBath(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if a.state.Session == nil {
		return domain.ErrNoActiveSession
	}
	if err := a.resumeTimer(); err != nil {
		return err
	}
	if err := a.machine.Go(screen.Home, nil); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgBathCancelled, "place_id", a.state.Session.PlaceID)
	a.state.Session = nil
	fmt.Fprintln(a.out, "入浴をキャンセルしました")
	return nil
}

// FinishBath logs the session, shows new stamps and then the result.
// A failed write keeps the session so finishing can be retried.
func (a *App) FinishBath(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	s := a.state.Session
	if s == nil {
		return domain.ErrNoActiveSession
	}
	if err := a.resumeTimer(); err != nil {
		return err
	}

	in := s.Finish(a.now())
	result, err := a.svc.Visit.InsertVisitLog(ctx, in)
	if err != nil {
		return err
	}
	a.state.Session = nil
	a.state.LastResult = result
	logger.FromContext(ctx).Info(LogMsgBathFinished, "place_id", in.PlaceID, "total_ms", in.TotalMs)

	c := a.companionAfterVisit(ctx, time.Duration(in.TotalMs)*time.Millisecond)

	if err := a.machine.Go(screen.StampAcquisition, screen.ResultPayload{Visit: *result}); err != nil {
		return err
	}
	renderStamps(a.out, *result)
	if err := a.machine.Go(screen.Result, nil); err != nil {
		return err
	}
	renderResult(a.out, *result, c)
	return nil
}

// companionAfterVisit returns the companion after the session increment,
// falling back to the last snapshot when it cannot be read
func (a *App) companionAfterVisit(ctx context.Context, elapsed time.Duration) *domain.Companion {
	var (
		c   *domain.Companion
		err error
	)
	if a.opts.ClientSideExp {
		c, err = a.svc.Companion.ApplySession(ctx, elapsed)
	} else {
		c, err = a.svc.Companion.Refresh(ctx)
	}
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCompanionRefresh, "error", err)
		return a.state.Companion
	}
	a.keepCompanion(c, true)
	return c
}

// resumeTimer puts the machine back on the timer for the persisted session
func (a *App) resumeTimer() error {
	if a.machine.Current() == screen.Timer {
		return nil
	}
	if err := a.enter(screen.LocationCheck, nil); err != nil {
		return err
	}
	return a.machine.Go(screen.Timer, screen.LocationPayload{Place: a.state.Session.Place()})
}

// Quests lists quests with progress, optionally fuzzy-filtered by name
func (a *App) Quests(ctx context.Context, filter string) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.StampRally, nil); err != nil {
		return err
	}
	list, err := a.svc.Quest.ListWithProgress(ctx)
	if err != nil {
		return err
	}
	if filter != "" {
		list = quest.FilterByName(list, filter)
	}
	renderQuests(a.out, list)
	return nil
}

// QuestDetail shows one quest and its qualifying onsens
func (a *App) QuestDetail(ctx context.Context, questID int64) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.StampRally, nil); err != nil {
		return err
	}
	list, err := a.svc.Quest.ListWithProgress(ctx)
	if err != nil {
		return err
	}
	var found *domain.QuestWithProgress
	for i := range list {
		if list[i].ID == questID {
			found = &list[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("%w: %d", domain.ErrQuestNotFound, questID)
	}

	onsens, err := a.svc.Quest.QuestOnsens(ctx, questID)
	if err != nil {
		return err
	}
	if err := a.machine.Go(screen.QuestDetail, screen.QuestPayload{QuestID: questID}); err != nil {
		return err
	}
	renderQuestDetail(a.out, *found, onsens)
	return nil
}

// Accessories shows the catalog with ownership and the equipped marker
func (a *App) Accessories(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Decoration, nil); err != nil {
		return err
	}
	catalog, err := a.svc.Accessory.Catalog(ctx)
	if err != nil {
		return err
	}
	owned, err := a.svc.Accessory.Owned(ctx)
	if err != nil {
		return err
	}
	renderAccessories(a.out, catalog, owned)
	return nil
}

// Equip equips an owned accessory
func (a *App) Equip(ctx context.Context, accessoryID int64) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Decoration, nil); err != nil {
		return err
	}
	ua, err := a.svc.Accessory.Equip(ctx, accessoryID)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("#%d", accessoryID)
	if ua != nil && ua.Accessory != nil {
		name = ua.Accessory.Name
	}
	fmt.Fprintf(a.out, "「%s」を装備しました\n", name)
	return nil
}

// Unequip removes whatever is equipped
func (a *App) Unequip(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Decoration, nil); err != nil {
		return err
	}
	if err := a.svc.Accessory.Unequip(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "アクセサリーを外しました")
	return nil
}

// Debug dumps companion stats, cache stats, metrics and recent events
func (a *App) Debug(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Debug, nil); err != nil {
		return err
	}
	c, err := a.svc.Companion.Get(ctx)
	if err != nil {
		return err
	}
	a.keepCompanion(c, false)

	view := debugView{Companion: c, Cache: a.svc.Companion.CacheStats()}
	if samples, snapErr := a.snapshot(); snapErr != nil {
		logger.FromContext(ctx).Warn("Failed to gather metrics", "error", snapErr)
	} else {
		view.Samples = samples
	}
	if a.opts.JournalPath != "" {
		entries, readErr := event.ReadRecent(a.opts.JournalPath, JournalEntriesShown)
		if readErr != nil {
			logger.FromContext(ctx).Warn("Failed to read event journal", "error", readErr)
		}
		view.Journal = entries
	}
	renderDebug(a.out, view)
	return nil
}

// DebugGrant adds experience and happiness by hand
func (a *App) DebugGrant(ctx context.Context, exp, happiness int) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Debug, nil); err != nil {
		return err
	}
	c, err := a.svc.Companion.AddExperienceAndHappiness(ctx, exp, happiness)
	if err != nil {
		return err
	}
	a.keepCompanion(c, true)
	renderCompanion(a.out, *c)
	return nil
}

// DebugGrantAccessory gives a specific accessory outside the quest rewards
func (a *App) DebugGrantAccessory(ctx context.Context, accessoryID int64) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Debug, nil); err != nil {
		return err
	}
	res, err := a.svc.Accessory.GrantAccessory(ctx, accessoryID)
	if err != nil {
		return err
	}
	if res.Granted {
		fmt.Fprintf(a.out, "「%s」を手に入れました\n", res.Accessory.Name)
	} else {
		fmt.Fprintf(a.out, "「%s」はもう持っています\n", res.Accessory.Name)
	}
	return nil
}

// DebugRollAccessory shows which accessory the next random reward would pick
func (a *App) DebugRollAccessory(ctx context.Context) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Debug, nil); err != nil {
		return err
	}
	acc, err := a.svc.Accessory.SelectRandomAccessory(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "抽選結果: 「%s」 (#%d)\n", acc.Name, acc.ID)
	return nil
}

// DebugCompleteQuest marks a quest complete without visiting its onsens
func (a *App) DebugCompleteQuest(ctx context.Context, questID int64) (err error) {
	defer func() { err = a.finish(ctx, err) }()

	if err := a.enter(screen.Debug, nil); err != nil {
		return err
	}
	sub, err := a.svc.Quest.SubmitCompletion(ctx, questID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "クエスト #%d を達成済みにしました (%s)\n", sub.QuestID, sub.CreatedAt.Local().Format(timeLayout))
	return nil
}
