package pipeline

import (
	"invdash/internal"
	"invdash/internal/util"
)

func ParseHandhelds(records []map[string]string, layout HandheldLayout) []internal.Handheld {
	out := make([]internal.Handheld, 0, len(records))
	for _, rec := range records {
		serial := ""
		for _, alias := range layout.SerialAliases {
			if v := util.CanonicalSerial(rec[alias]); v != "" {
				serial = v
				break
			}
		}
		if serial == "" {
			continue
		}
		out = append(out, internal.Handheld{
			ID:           util.FirstNonBlank(internal.DefaultRecordID, rec[layout.IDHeader]),
			SerialNumber: serial,
			Status:       util.FirstNonBlank(internal.DefaultHandheldStatus, rec[layout.StatusHeader]),
		})
	}
	return out
}
