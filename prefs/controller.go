package prefs

import (
	"github.com/google/uuid"
	"github.com/yllada/gpg-manager/common"
	"github.com/yllada/gpg-manager/settings"
)

// Snapshot is the in-memory state of one open preferences dialog.
// It is applied or cancelled exactly once.
type Snapshot struct {
	General    *General
	Appearance *Appearance
	Mime       *Mime
	Keyserver  *Keyserver
	Advanced   *Advanced
	Paths      *Paths

	closed bool
}

// Groups returns the groups in apply order.
func (s *Snapshot) Groups() []Group {
	return []Group{s.General, s.Mime, s.Appearance, s.Keyserver, s.Advanced, s.Paths}
}

// Closed reports whether the snapshot was applied or cancelled.
func (s *Snapshot) Closed() bool { return s.closed }

// RestartKeys returns the changed keys that only take effect after a
// restart of the host application.
func (s *Snapshot) RestartKeys() []string {
	var keys []string
	if s.General.Language.Changed() {
		keys = append(keys, s.General.Language.Key())
	}
	if s.Paths.KeyDB.Changed() {
		keys = append(keys, settings.KeyKeyDBPath)
	}
	return keys
}

// ApplyResult describes one apply pass.
type ApplyResult struct {
	// ID identifies the pass in the logs.
	ID string
	// Written counts the bindings that reached the store.
	Written int
	// RestartRequired is set when a setting read only at startup changed.
	RestartRequired bool
	RestartKeys     []string
}

// Option configures a Controller.
type Option func(*Controller)

// WithPassphraseCache lets the controller switch passphrase caching when
// remember-password is applied.
func WithPassphraseCache(cache common.PassphraseCache) Option {
	return func(c *Controller) { c.cache = cache }
}

// WithLogger replaces the default application logger.
func WithLogger(l common.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller loads settings into snapshots and writes them back.
type Controller struct {
	store  settings.Store
	appDir string
	cache  common.PassphraseCache
	log    common.Logger
}

// NewController creates a controller over store. appDir is the application
// directory the key database path is relative to.
func NewController(store settings.Store, appDir string, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		appDir: appDir,
		log:    common.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the underlying settings store.
func (c *Controller) Store() settings.Store { return c.store }

// Open loads every group into a fresh snapshot.
func (c *Controller) Open() *Snapshot {
	snap := &Snapshot{
		General:    NewGeneral(),
		Appearance: NewAppearance(),
		Mime:       NewMime(),
		Keyserver:  NewKeyserver(),
		Advanced:   NewAdvanced(),
		Paths:      NewPaths(c.appDir),
	}
	for _, g := range snap.Groups() {
		loadGroup(g, c.store)
	}
	c.log.Debug("Loaded preferences snapshot")
	return snap
}

// Apply writes every group of snap in order. It stops at the first store
// error; groups written before it stay written. On success the snapshot
// is closed.
func (c *Controller) Apply(snap *Snapshot) (ApplyResult, error) {
	if snap.closed {
		return ApplyResult{}, common.ErrSnapshotClosed
	}

	result := ApplyResult{
		ID:          uuid.NewString(),
		RestartKeys: snap.RestartKeys(),
	}
	result.RestartRequired = len(result.RestartKeys) > 0

	for _, g := range snap.Groups() {
		n, err := applyGroup(g, c.store)
		result.Written += n
		if err != nil {
			c.log.Error("Preferences batch %s failed after %d settings: %v", result.ID, result.Written, err)
			return result, err
		}
	}
	snap.closed = true

	if c.cache != nil {
		c.cache.SetEnabled(snap.General.RememberPassword.Value)
	}

	c.log.Info("Applied %d preferences (batch %s, restart required: %v)", result.Written, result.ID, result.RestartRequired)
	return result, nil
}

// Cancel discards snap without writing anything.
func (c *Controller) Cancel(snap *Snapshot) error {
	if snap.closed {
		return common.ErrSnapshotClosed
	}
	snap.closed = true
	c.log.Debug("Preferences cancelled")
	return nil
}
