package core

import (
	"context"
	"fmt"
	"net/http"

	"svmm/internal/domain"
	"svmm/internal/logging"
	"svmm/internal/source/nexusmods"
	"svmm/internal/source/smapi"
	"svmm/internal/source/steam"
	"svmm/internal/storage/config"
	"svmm/internal/storage/db"

	"go.uber.org/zap"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir string             // Directory holding config.yaml
	Config    *config.Config     // Used as is when set; ConfigDir is not read
	GameDir   string             // Overrides config and Steam detection when set
	Logger    *zap.SugaredLogger // Optional
	Lookup    RegistryLookup     // Overrides the SMAPI registry client when set
	Describer Describer          // Overrides the Nexus Mods client when set
}

// Service is the main orchestrator for mod management operations
type Service struct {
	config    *config.Config
	game      domain.Game
	data      GameData
	db        *db.DB
	log       *zap.SugaredLogger
	registry  *ModRegistry
	profiles  *ProfileManager
	resolver  *DependencyResolver
	installer *ArchiveInstaller
}

// NewService creates a new core service instance: it resolves the game
// directory, bootstraps the profile layout and opens the database.
func NewService(cfg ServiceConfig) (*Service, error) {
	log := logging.OrNop(cfg.Logger)

	appConfig := cfg.Config
	if appConfig == nil {
		loaded, err := config.Load(cfg.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		appConfig = loaded
	}

	game := domain.StardewValley
	gameDir, err := resolveGameDir(cfg.GameDir, appConfig.GameDir, game)
	if err != nil {
		return nil, err
	}
	log.Debugw("using game directory", "path", gameDir)

	data := NewGameData(game, gameDir)
	registry := NewModRegistry(data, NewScanner(log), log)

	// The layout must exist before the database file can be created inside it.
	if err := NewProfileManager(data, registry, nil, log).Bootstrap(); err != nil {
		return nil, fmt.Errorf("bootstrapping profiles: %w", err)
	}

	database, err := db.New(data.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	schema, err := database.SchemaVersion()
	if err != nil {
		database.Close()
		return nil, err
	}
	log.Debugw("opened database", "path", data.DatabasePath(), "schema", schema)

	httpClient := &http.Client{Timeout: appConfig.RequestTimeout}

	lookup := cfg.Lookup
	if lookup == nil {
		lookup = smapi.NewClient(httpClient, appConfig.RegistryURL, appConfig.UserAgent)
	}
	resolver := NewDependencyResolver(NewCachedLookup(lookup, database, log), log)

	describer := cfg.Describer
	if describer == nil && appConfig.NexusAPIKey != "" {
		describer = nexusmods.NewClient(httpClient, appConfig.NexusAPIKey, nexusmods.StardewValleyGameID)
	}
	if describer != nil {
		resolver.SetDescriber(describer)
	}

	return &Service{
		config:    appConfig,
		game:      game,
		data:      data,
		db:        database,
		log:       log,
		registry:  registry,
		profiles:  NewProfileManager(data, registry, database, log),
		resolver:  resolver,
		installer: NewArchiveInstaller(data.ModsPath, log),
	}, nil
}

// resolveGameDir picks the explicit directory, then the configured one,
// then a Steam library that has the game.
func resolveGameDir(explicit, configured string, game domain.Game) (string, error) {
	for _, dir := range []string{explicit, configured} {
		if dir == "" {
			continue
		}
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return "", err
		}
		if !isDir(expanded) {
			return "", fmt.Errorf("%w: %s is not a directory", domain.ErrGameNotFound, expanded)
		}
		return expanded, nil
	}

	if dir := steam.FindGameDir(steam.StardewValleyAppID, game.Name); dir != "" {
		return dir, nil
	}
	return "", fmt.Errorf("%w: set game_dir in config or pass --game-dir", domain.ErrGameNotFound)
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Config returns the loaded configuration.
func (s *Service) Config() *config.Config {
	return s.config
}

// Data returns the filesystem layout in use.
func (s *Service) Data() GameData {
	return s.data
}

// Mods returns the active and inactive mods of the live profile.
func (s *Service) Mods(ctx context.Context) (active, inactive []domain.InstalledMod, err error) {
	return s.registry.Load(ctx)
}

// FindMod looks up a mod of the live profile by unique ID.
func (s *Service) FindMod(ctx context.Context, id string) (*domain.InstalledMod, error) {
	return s.registry.Find(ctx, id)
}

// Links derives web links from a mod's update keys.
func (s *Service) Links(mod domain.ModManifest) domain.ModLinks {
	return ParseUpdateKeys(s.game, mod.UpdateKeys, s.log)
}

// Profiles lists profiles, marking the live one.
func (s *Service) Profiles() ([]domain.Profile, error) {
	return s.profiles.List()
}

// ActiveProfile returns the live profile name.
func (s *Service) ActiveProfile() (string, error) {
	return s.profiles.Active()
}

// CreateProfile adds an empty profile.
func (s *Service) CreateProfile(name string) (*domain.Profile, error) {
	return s.profiles.Create(name)
}

// DeleteProfile soft-deletes a profile that is not live.
func (s *Service) DeleteProfile(name string) (string, error) {
	return s.profiles.Delete(name)
}

// SelectProfile makes name the live profile.
func (s *Service) SelectProfile(ctx context.Context, name string) error {
	return s.profiles.Select(ctx, name)
}

// ToggleMod moves a mod between active and inactive.
func (s *Service) ToggleMod(ctx context.Context, id string) (*domain.InstalledMod, error) {
	return s.profiles.Toggle(ctx, id)
}

// RemoveMod soft-deletes a mod and returns where it went.
func (s *Service) RemoveMod(ctx context.Context, id string) (string, error) {
	return s.profiles.Remove(ctx, id)
}

// Repair resumes an interrupted profile switch, if any.
func (s *Service) Repair(ctx context.Context) (*domain.SwitchRecord, error) {
	return s.profiles.Repair(ctx)
}

// SwitchHistory returns recent profile switches, newest first.
func (s *Service) SwitchHistory(limit int) ([]domain.SwitchRecord, error) {
	return s.db.RecentSwitches(limit)
}

// MissingDependencies reports dependencies the active mods lack, offline.
func (s *Service) MissingDependencies(ctx context.Context) ([]domain.MissingDependency, error) {
	active, _, err := s.registry.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolver.FindMissing(active), nil
}

// ResolveDependencies reports missing dependencies joined with registry data.
func (s *Service) ResolveDependencies(ctx context.Context) ([]domain.ResolvedDependency, error) {
	active, _, err := s.registry.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, active)
}

// InspectArchive lists the manifests inside an archive.
func (s *Service) InspectArchive(path string) (*domain.ZipArchiveCandidate, error) {
	return s.installer.Inspect(path)
}

// InstallArchive extracts an archive into the mods root.
func (s *Service) InstallArchive(ctx context.Context, path string) (string, error) {
	return s.installer.Install(ctx, path)
}

// FindArchives lists mod archives in the configured downloads folder.
func (s *Service) FindArchives(ctx context.Context) ([]domain.ZipArchiveCandidate, error) {
	return s.installer.FindArchives(ctx, s.config.DownloadsDir)
}
