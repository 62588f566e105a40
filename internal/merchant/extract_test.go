package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_FreeText(t *testing.T) {
	assert.Equal(t, "POS SWIGGY BANGALORE", Extract("  POS SWIGGY BANGALORE "))
}

func TestExtract_UPINarration(t *testing.T) {
	// The second segment carries the payee.
	assert.Equal(t, "GROCERY MART", Extract("UPI/GROCERY MART/408912345678/payment/okhdfc"))
}

func TestExtract_SkipsPartyIDs(t *testing.T) {
	// Long numeric ids and @-handles never name the counterparty.
	assert.Equal(t, "RENT APRIL", Extract("IMPS/410987654321/RENT APRIL/LANDLORD"))
	assert.Equal(t, "payment", Extract("UPI/512345678901/mart@okhdfc/payment"))
}

func TestExtract_ShortNumericIsAName(t *testing.T) {
	// Five digits or fewer could be a legitimate name fragment (e.g. "7-11").
	assert.Equal(t, "24", Extract("ATW/24/MG ROAD"))
}

func TestExtract_AllSegmentsExcluded(t *testing.T) {
	desc := "UPI/408912345678/mart@okhdfc"
	assert.Equal(t, desc, Extract(desc))
}
