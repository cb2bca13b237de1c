package musictag

// SaveOption configures Save and SaveTo behavior on filesystem targets.
// Buffer-only saves ignore these options.
type SaveOption func(*saveOptions)

type saveOptions struct {
	backupSuffix    string
	preserveModTime bool
	validate        bool
}

func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithBackup renames the existing target file aside before saving, with
// the given suffix appended ("song.mp3" becomes "song.mp3.bak" for
// WithBackup(".bak")). An existing backup with the same name is
// overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithPreserveModTime keeps the target file's modification time across
// the save instead of letting it advance to now.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}

// WithValidation re-opens the written file after saving and verifies
// the key fields read back as written. Adds a full re-parse per save.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}
