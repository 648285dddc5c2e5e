package corrector

import (
	"testing"

	"jyotishkb/pkg/astro/model"
)

func TestValidateLengthRatio(t *testing.T) {
	item := BatchItem{
		OriginalText: "Mars in 7th house gives discord.",
		Conditions:   model.Conditions{Planet: "Mars", House: 7},
		Effects:      []string{"discord"},
	}
	tooLong := "Mars in the seventh house, in classical texts, gives discord in marriage and also affects many other areas of life across several chapters of analysis."
	_, reason, ok := validate(item, tooLong)
	if ok {
		t.Fatalf("expected rejection for excessive length ratio")
	}
	if reason != model.RejectLengthRatio {
		t.Errorf("expected length_ratio reason, got %s", reason)
	}
}

func TestValidateInvalidUTF8(t *testing.T) {
	item := BatchItem{
		OriginalText: "Mars in 7th house gives discord.",
		Conditions:   model.Conditions{Planet: "Mars", House: 7},
	}
	bad := string([]byte{0xff, 0xfe, 0xfd})
	_, reason, ok := validate(item, bad)
	if ok {
		t.Fatalf("expected rejection for invalid UTF-8")
	}
	if reason != model.RejectInvalidUTF8 {
		t.Errorf("expected invalid_utf8 reason, got %s", reason)
	}
}

func TestValidateEffectsDrift(t *testing.T) {
	item := BatchItem{
		OriginalText: "Mars in 7th house gives discord in marriage.",
		Conditions:   model.Conditions{Planet: "Mars", House: 7},
		Effects:      []string{"discord in marriage"},
	}
	drifted := "Mars in 7th house gives great fortune and happiness."
	_, reason, ok := validate(item, drifted)
	if ok {
		t.Fatalf("expected rejection for effects drift")
	}
	if reason != model.RejectEffectsDrift {
		t.Errorf("expected effects_drift reason, got %s", reason)
	}
}

func TestValidateAcceptsCleanedCorrection(t *testing.T) {
	item := BatchItem{
		OriginalText: "Marsin7thhousegivesdiscordinmarriage",
		Conditions:   model.Conditions{Planet: "Mars", House: 7},
		Effects:      []string{"discord in marriage"},
	}
	corrected := "Mars in 7th house gives discord in marriage."
	out, _, ok := validate(item, corrected)
	if !ok {
		t.Fatalf("expected acceptance for a faithful cleanup")
	}
	if out != corrected {
		t.Errorf("expected accepted text to be returned unchanged")
	}
}

func TestContainsHouseTokenAcceptsOrdinalWord(t *testing.T) {
	if !containsHouseToken("lord of the seventh house", 7) {
		t.Errorf("expected ordinal word 'seventh' to satisfy house token check")
	}
}
