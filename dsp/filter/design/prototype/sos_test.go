package prototype_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-peq/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-peq/dsp/filter/zpk"
)

func TestDesignsConvertToStableSections(t *testing.T) {
	designs := map[string]func() (prototype.ZPK, error){
		"butter-lp-8": func() (prototype.ZPK, error) { return prototype.Butterworth(8, 0.2, prototype.Lowpass) },
		"butter-hp-3": func() (prototype.ZPK, error) { return prototype.Butterworth(3, 0.05, prototype.Highpass) },
		"ellip-lp-12": func() (prototype.ZPK, error) { return prototype.Elliptic(12, 0.01, 80, 15000.0/22050, prototype.Lowpass) },
		"ellip-hp-12": func() (prototype.ZPK, error) { return prototype.Elliptic(12, 0.01, 80, 100.0/22050, prototype.Highpass) },
		"ellip-lp-5":   func() (prototype.ZPK, error) { return prototype.Elliptic(5, 0.5, 50, 0.4, prototype.Lowpass) },
	}

	for name, design := range designs {
		t.Run(name, func(t *testing.T) {
			d, err := design()
			if err != nil {
				t.Fatal(err)
			}

			sos, _, err := zpk.ToSOS(d.Zeros, d.Poles, d.Gain)
			if err != nil {
				t.Fatalf("ToSOS: %v", err)
			}

			if want := (d.Order() + 1) / 2; sos.NumSections() != want {
				t.Fatalf("sections = %d, want %d", sos.NumSections(), want)
			}

			if !sos.IsStable() {
				t.Fatal("cascade is not stable")
			}

			for _, w := range []float64{0.001, 0.3, 1, 2.5} {
				ez := cmplx.Exp(complex(0, w))
				h := complex(d.Gain, 0)
				for _, z := range d.Zeros {
					h *= ez - z
				}
				for _, p := range d.Poles {
					h /= ez - p
				}

				got := cmplx.Abs(sos.ResponseAt(w))
				want := cmplx.Abs(h)
				if math.Abs(got-want) > 1e-8*math.Max(1, want) {
					t.Fatalf("w=%v: |H| sections=%v zpk=%v", w, got, want)
				}
			}
		})
	}
}
