package onprem

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/dcm/internal/auditlog"
	"nathanbeddoewebdev/dcm/internal/config"
	"nathanbeddoewebdev/dcm/internal/logging"
	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/platform"
	"nathanbeddoewebdev/dcm/internal/onprem/services"
	"nathanbeddoewebdev/dcm/internal/onprem/snapshot"
	"nathanbeddoewebdev/dcm/internal/services/auth"
	"nathanbeddoewebdev/dcm/internal/swrcache"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// EnvToken supplies the API token without touching the keychain.
const EnvToken = "DCM_API_TOKEN"

// APIFactory builds the platform API for a configured platform.
type APIFactory func(cfg config.Config, token string, log zerolog.Logger) (domain.API, error)

// newAPI is replaced in tests.
var newAPI APIFactory = func(cfg config.Config, token string, log zerolog.Logger) (domain.API, error) {
	client, err := platform.New(cfg.APIURL, cfg.CustomerUUID, token, platform.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// tokenStore is replaced in tests.
var tokenStore = auth.DefaultStore

// NewCommand returns the "onprem" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onprem",
		Short: "Inspect and manage the on-premises datacenter provider",
		Long: `Show the on-premises datacenter provider configuration, list its nodes,
print the configuration wizard seed, or delete the configuration.

The platform is set with 'dcm config set api-url' and
'dcm config set customer-uuid'; the API token with 'dcm auth login'.`,
	}

	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(NodesCommand())
	cmd.AddCommand(SnapshotCommand())
	cmd.AddCommand(DeleteCommand())

	cmd.PersistentFlags().Bool("no-cache", false, "Bypass the local read cache")

	return cmd
}

// env is everything an onprem command needs to talk to the platform.
type env struct {
	cfg     config.Config
	log     zerolog.Logger
	service *services.Service
	audit   auditlog.Repository
}

// openEnv loads the platform settings and token and wires the service
// stack. Callers must Close the env.
func openEnv(cmd *cobra.Command) (*env, error) {
	loaded, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := loaded.WithEnv()
	if err := cfg.RequirePlatform(); err != nil {
		return nil, err
	}

	token, err := resolveToken(cfg.APIURL)
	if err != nil {
		return nil, err
	}

	log := logging.Component("onprem").With().Str("customer_uuid", cfg.CustomerUUID).Logger()

	api, err := newAPI(cfg, token, log)
	if err != nil {
		return nil, err
	}

	opts := []services.Option{services.WithLogger(log)}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	if !noCache {
		cache := swrcache.NewDefault(swrcache.WithLogger(log))
		opts = append(opts, services.WithCache(cache, cfg.CustomerUUID))
	}

	e := &env{cfg: cfg, log: log}
	if repo, err := auditlog.Open(); err != nil {
		log.Debug().Err(err).Msg("audit log unavailable")
	} else {
		e.audit = repo
		opts = append(opts, services.WithAudit(repo))
	}

	e.service = services.New(api, opts...)
	return e, nil
}

func (e *env) Close() {
	if e.audit != nil {
		e.audit.Close()
	}
}

// newSession returns a session over the env's service with a fresh seed
// store.
func (e *env) newSession() *services.Session {
	return services.NewSession(e.service, snapshot.NewStore(nil), e.log)
}

func resolveToken(apiURL string) (string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token, nil
	}

	account := auth.AccountForURL(apiURL)
	token, err := tokenStore().GetToken(account)
	if errors.Is(err, auth.ErrTokenNotFound) {
		return "", fmt.Errorf("not logged in to %s (run 'dcm auth login')", account)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read API token: %w", err)
	}
	return token, nil
}
