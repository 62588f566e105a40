// Package ingest orchestrates the statement pipeline: parse, format,
// enrich, dedupe, persist.
package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline-dev/ledgerline/internal/merchant"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/parser"
)

// dateLayouts is the ordered list tried when normalizing statement dates.
// Day-first layouts precede month-first so ambiguous dates resolve
// deterministically; unpadded layouts also accept padded values.
var dateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
	"2-1-06",
	"1/2/2006", // month-first fallback for US exports
	"2 Jan 2006",
	"2-Jan-2006",
	"2 Jan 06",
	"2-Jan-06",
	"2 January 2006",
}

var shortDatePattern = regexp.MustCompile(`^(\d{1,2})([/-])(\d{1,2})[/-](\d{1,2})$`)

// NormalizeDate parses a statement date string into a UTC calendar date.
// Two-digit years follow Go's convention (69-99 land in the 1900s, 00-68
// in the 2000s); one-digit fragments that escape every layout expand into
// the 2000s.
func NormalizeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return toDate(t), nil
		}
	}

	// Fragments like "5/3/4" fall through the layout list; expand the year
	// manually and retry day-first.
	if m := shortDatePattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[4])
		expanded := fmt.Sprintf("%s%s%s%s%d", m[1], m[2], m[3], m[2], 2000+year)
		if t, err := time.Parse("2/1/2006", expanded); err == nil {
			return toDate(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// channelKeywords classifies the payment rail from description tokens.
// Order matters: rail acronyms are checked before the generic card words.
var channelKeywords = []struct {
	keyword string
	channel model.Channel
}{
	{"upi", model.ChannelTransfer},
	{"imps", model.ChannelTransfer},
	{"neft", model.ChannelTransfer},
	{"rtgs", model.ChannelTransfer},
	{"ach", model.ChannelTransfer},
	{"transfer", model.ChannelTransfer},
	{"atm", model.ChannelCash},
	{"atw", model.ChannelCash},
	{"cash", model.ChannelCash},
	{"pos", model.ChannelCard},
	{"card", model.ChannelCard},
	{"visa", model.ChannelCard},
	{"mastercard", model.ChannelCard},
	{"ecom", model.ChannelCard},
}

// ClassifyChannel derives the payment rail from the raw description.
func ClassifyChannel(description string) model.Channel {
	text := strings.ToLower(description)
	for _, ck := range channelKeywords {
		if strings.Contains(text, ck.keyword) {
			return ck.channel
		}
	}
	return model.ChannelOther
}

// Format converts a raw parsed row into a canonical transaction. The id is
// generated here, not derived from source data. Enrichment (merchant
// resolution, categorization, dedupe) happens later in the pipeline. The
// balance pointer is carried through as-is: an explicit zero stays zero.
func Format(raw parser.RawRow, source string, owner model.OwnerKey) (*model.Transaction, error) {
	date, err := NormalizeDate(raw.DateStr)
	if err != nil {
		return nil, err
	}
	return &model.Transaction{
		ID:             uuid.NewString(),
		Owner:          owner,
		Date:           date,
		Amount:         raw.Amount.Abs(),
		Type:           raw.Type,
		DescriptionRaw: raw.Description,
		MerchantRaw:    merchant.Extract(raw.Description),
		Channel:        ClassifyChannel(raw.Description),
		Balance:        raw.Balance,
		Source:         source,
	}, nil
}
