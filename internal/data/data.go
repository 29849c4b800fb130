package data

import (
	"log/slog"

	"github.com/alutalk/channel/internal/biz/repo"
)

// Options contains what the repositories are built from
type Options struct {
	MessageFile  string
	Oracle       OracleConfig
	ProfanityURL string
	WordCache    string
	AuditDBPath  string // empty disables the audit log
	HubURL       string
	HubAuthKey   string
}

// Repositories contains all repositories
type Repositories struct {
	Message  repo.MessageRepo
	Oracle   repo.OracleRepo
	WordList repo.WordListRepo
	Audit    repo.AuditRepo // nil when disabled
	Hub      repo.HubRepo
}

// NewRepositories creates all repositories
func NewRepositories(opts Options, logger *slog.Logger) (*Repositories, error) {
	if logger == nil {
		logger = slog.Default()
	}

	messageRepo, err := NewFileStore(opts.MessageFile, logger.With("component", "store"))
	if err != nil {
		return nil, err
	}

	var auditRepo repo.AuditRepo
	if opts.AuditDBPath != "" {
		auditRepo, err = NewAuditRepo(opts.AuditDBPath)
		if err != nil {
			return nil, err
		}
	}

	return &Repositories{
		Message:  messageRepo,
		Oracle:   NewOracleRepo(opts.Oracle),
		WordList: NewWordListRepo(opts.ProfanityURL, opts.WordCache, logger.With("component", "wordlist")),
		Audit:    auditRepo,
		Hub:      NewHubRepo(opts.HubURL, opts.HubAuthKey),
	}, nil
}

// Close releases the repositories that hold resources
func (r *Repositories) Close() error {
	if r.Audit != nil {
		return r.Audit.Close()
	}
	return nil
}
