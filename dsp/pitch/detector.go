package pitch

import "github.com/cwbudde/algo-pitch/dsp/core"

// Estimate is a detected pitch. Clarity is the NSDF value at the chosen key
// maximum, in (0, 1].
type Estimate struct {
	Frequency float64
	Clarity   float64
}

// Detector estimates the pitch of fixed-size frames. It owns scratch buffers
// that are overwritten on every call, so a Detector must not be used from
// several goroutines at once.
type Detector struct {
	cfg    Config
	nsdf   []float64
	maxima []KeyMaximum
	fft    *fftCorrelator
	scaled []float64
}

// New builds a Detector for frames of at least windowSize samples recorded at
// sampleRate Hz. Padding defaults to windowSize/2 lags.
func New(sampleRate float64, windowSize int, opts ...Option) (*Detector, error) {
	cfg, err := NewConfig(sampleRate, windowSize, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg)
}

// NewFromConfig builds a Detector from an explicit Config.
func NewFromConfig(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lags := cfg.Lags()
	d := &Detector{
		cfg:    cfg,
		nsdf:   make([]float64, lags),
		maxima: make([]KeyMaximum, 0, lags/2+1),
		scaled: make([]float64, cfg.WindowSize),
	}
	if cfg.Method == MethodFFT {
		fc, err := newFFTCorrelator(cfg.WindowSize)
		if err != nil {
			return nil, err
		}
		d.fft = fc
	}
	return d, nil
}

// Config returns the detector configuration.
func (d *Detector) Config() Config { return d.cfg }

// SampleRate returns the sample rate in Hz.
func (d *Detector) SampleRate() float64 { return d.cfg.SampleRate }

// WindowSize returns the number of samples analysed per frame.
func (d *Detector) WindowSize() int { return d.cfg.WindowSize }

// NSDF returns the NSDF computed by the last Detect call. It is all zeros
// when that call stopped at the power gate. The slice is owned by the
// Detector and overwritten by the next call.
func (d *Detector) NSDF() []float64 { return d.nsdf }

// KeyMaxima returns the key maxima found by the last Detect call. The slice is
// owned by the Detector and overwritten by the next call.
func (d *Detector) KeyMaxima() []KeyMaximum { return d.maxima }

// Detect estimates the pitch of the first WindowSize samples of frame.
// ok is false when the frame is too quiet, not periodic enough, or yields a
// non-physical lag. Frames shorter than WindowSize return an
// *InsufficientSamplesError.
func (d *Detector) Detect(frame []float64) (est Estimate, ok bool, err error) {
	w := d.cfg.WindowSize
	if len(frame) < w {
		return Estimate{}, false, &InsufficientSamplesError{Expected: w, Actual: len(frame)}
	}
	x := frame[:w]

	if Energy(x) < d.cfg.PowerThreshold {
		core.Zero(d.nsdf)
		d.maxima = d.maxima[:0]
		return Estimate{}, false, nil
	}

	x = rescaleOverflow(d.scaled, x)
	if d.fft != nil {
		if err := d.fft.compute(d.nsdf, x); err != nil {
			return Estimate{}, false, err
		}
	} else {
		nsdfDirect(d.nsdf, x)
	}

	d.maxima = KeyMaxima(d.nsdf, d.maxima)
	peak, found := SelectPeak(d.maxima, d.cfg.ClarityThreshold)
	if !found || peak.Value < d.cfg.ClarityThreshold {
		return Estimate{}, false, nil
	}

	freq, valid := lagToFrequency(d.cfg.SampleRate, refineLag(d.nsdf, peak.Lag))
	if !valid {
		return Estimate{}, false, nil
	}
	return Estimate{Frequency: freq, Clarity: peak.Value}, true, nil
}

// DetectFrequency is Detect reduced to a single number: the frequency in Hz,
// or 0 when no pitch was found.
func (d *Detector) DetectFrequency(frame []float64) (float64, error) {
	est, ok, err := d.Detect(frame)
	if err != nil || !ok {
		return 0, err
	}
	return est.Frequency, nil
}
