package subsonic

import (
	"encoding/json"
	"fmt"
)

// resultKeys are the search result sections a Navidrome response may carry,
// in lookup order. search3 is what modern clients use; search2 is kept for
// older ones. Only the first section present is merged into.
var resultKeys = []string{"searchResult3", "searchResult2"}

// MergeSearch appends songs to the song list inside a Navidrome search
// response and recomputes the aggregate counts. The primary document is
// edited layer by layer as raw JSON so every field the proxy does not
// understand (artist/album lists, extra metadata) survives byte-for-byte.
//
// Returns ok=false when primary is not a successful subsonic search
// document; the caller should then relay primary unmodified.
func MergeSearch(primary []byte, songs []SongRecord) (merged []byte, ok bool, err error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(primary, &doc); err != nil {
		return nil, false, nil
	}
	rawResp, found := doc["subsonic-response"]
	if !found {
		return nil, false, nil
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rawResp, &resp); err != nil {
		return nil, false, nil
	}
	// A status field is not required — HTTP 200 already vouched for the
	// document — but an explicit non-ok status blocks the merge.
	if rawStatus, found := resp["status"]; found {
		var status string
		if err := json.Unmarshal(rawStatus, &status); err != nil || status != "ok" {
			return nil, false, nil
		}
	}

	key, rawResult := "", json.RawMessage(nil)
	for _, k := range resultKeys {
		if r, found := resp[k]; found {
			key, rawResult = k, r
			break
		}
	}
	if key == "" {
		return nil, false, nil
	}

	var result map[string]json.RawMessage
	if err := json.Unmarshal(rawResult, &result); err != nil {
		return nil, false, nil
	}

	// Existing songs stay as opaque JSON so Navidrome-native records are
	// never reshaped by this proxy's struct definitions.
	var existing []json.RawMessage
	if raw, found := result["song"]; found {
		if err := json.Unmarshal(raw, &existing); err != nil {
			return nil, false, nil
		}
	}
	for _, s := range songs {
		b, err := json.Marshal(s)
		if err != nil {
			return nil, true, fmt.Errorf("subsonic: marshalling injected song %s: %w", s.ID, err)
		}
		existing = append(existing, b)
	}

	songList, err := json.Marshal(existing)
	if err != nil {
		return nil, true, fmt.Errorf("subsonic: marshalling merged song list: %w", err)
	}
	result["song"] = songList
	result["totalSongs"] = rawInt(len(existing))
	result["songCount"] = rawInt(len(existing))
	result["offset"] = rawInt(0)

	if resp[key], err = json.Marshal(result); err != nil {
		return nil, true, err
	}
	if doc["subsonic-response"], err = json.Marshal(resp); err != nil {
		return nil, true, err
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, true, err
	}
	return out, true, nil
}

func rawInt(n int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf("%d", n))
}
