package grid

import "time"

// Default animation delays.
const (
	DefaultFlashDelay = 500 * time.Millisecond
	DefaultFadeDelay  = 1000 * time.Millisecond
)

// Options are the grid-wide settings cells consult. Cells read them on
// every use, so changes take effect without recreating cells.
type Options struct {
	SingleClickEdit          bool
	SuppressCellSelection    bool
	RowSelection             bool
	EnableCellChangeFlash    bool
	GroupIncludeFooter       bool
	GroupSuppressBlankHeader bool
	SuppressContextMenu      bool

	// CheckboxSelection is consulted for columns without their own setting.
	CheckboxSelection func(CheckboxSelectionParams) bool

	FlashDelay time.Duration
	FadeDelay  time.Duration
}

// DefaultOptions returns options with the default animation delays.
func DefaultOptions() *Options {
	return &Options{
		FlashDelay: DefaultFlashDelay,
		FadeDelay:  DefaultFadeDelay,
	}
}

// FlashDelayOrDefault returns FlashDelay, or the default when unset.
func (o *Options) FlashDelayOrDefault() time.Duration {
	if o.FlashDelay <= 0 {
		return DefaultFlashDelay
	}
	return o.FlashDelay
}

// FadeDelayOrDefault returns FadeDelay, or the default when unset.
func (o *Options) FadeDelayOrDefault() time.Duration {
	if o.FadeDelay <= 0 {
		return DefaultFadeDelay
	}
	return o.FadeDelay
}
