package installer

// Settings are the answers the wizard writes to <runtime>/.env. Zero values
// are left out so the application defaults keep applying.
type Settings struct {
	BaseURL         string `env:"GRACE_API_URL"`
	HistoryLimit    int    `env:"GRACE_HISTORY_LIMIT"`
	EnableTelegram  bool   `env:"GRACE_ENABLE_TELEGRAM"`
	TelegramToken   string `env:"GRACE_TELEGRAM_TOKEN"`
	TelegramOwnerID int64  `env:"GRACE_TELEGRAM_OWNER_ID"`
	Debug           string `env:"GRACE_DEBUG"`
}

type InstallState struct {
	Settings Settings

	// channel picked in ChannelStep; only used while the wizard runs
	channel string

	RuntimePath string
	Force       bool
	InitStorage func(runtimePath string) error
}

func NewInstallState(opts Options) *InstallState {
	return &InstallState{
		RuntimePath: opts.RuntimePath,
		Force:       opts.Force,
		InitStorage: opts.InitStorage,
	}
}
