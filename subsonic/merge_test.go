package subsonic_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
)

type obj = map[string]interface{}

// mergeInto is a test helper that marshals input, merges songs into it,
// and returns the unmarshalled result.
func mergeInto(input obj, songs []subsonic.SongRecord) obj {
	b, err := json.Marshal(input)
	Expect(err).NotTo(HaveOccurred())
	merged, ok, err := subsonic.MergeSearch(b, songs)
	Expect(err).NotTo(HaveOccurred())
	Expect(ok).To(BeTrue())
	var out obj
	Expect(json.Unmarshal(merged, &out)).To(Succeed())
	return out
}

func searchResult(out obj, key string) obj {
	resp, ok := out["subsonic-response"].(obj)
	Expect(ok).To(BeTrue())
	result, ok := resp[key].(obj)
	Expect(ok).To(BeTrue())
	return result
}

func song(id string) subsonic.SongRecord {
	s := subsonic.SongRecord{ID: id, Genres: []string{}}
	return s
}

var _ = Describe("MergeSearch", func() {
	It("appends injected songs after the existing ones and recomputes counts", func() {
		out := mergeInto(obj{
			"subsonic-response": obj{
				"status":  "ok",
				"version": "1.16.1",
				"searchResult3": obj{
					"song":       []interface{}{obj{"id": "1"}},
					"totalSongs": 1,
					"songCount":  1,
					"offset":     5,
				},
			},
		}, []subsonic.SongRecord{song("ext_42")})

		result := searchResult(out, "searchResult3")
		songs, ok := result["song"].([]interface{})
		Expect(ok).To(BeTrue())
		Expect(songs).To(HaveLen(2))
		Expect(songs[0].(obj)["id"]).To(Equal("1"))
		Expect(songs[1].(obj)["id"]).To(Equal("ext_42"))
		Expect(result["totalSongs"]).To(BeEquivalentTo(2))
		Expect(result["songCount"]).To(BeEquivalentTo(2))
		Expect(result["offset"]).To(BeEquivalentTo(0))
	})

	It("creates the song list when the primary result has none", func() {
		out := mergeInto(obj{
			"subsonic-response": obj{
				"status":        "ok",
				"version":       "1.16.1",
				"searchResult3": obj{},
			},
		}, []subsonic.SongRecord{song("ext_1"), song("ext_2")})

		result := searchResult(out, "searchResult3")
		Expect(result["song"]).To(HaveLen(2))
		Expect(result["totalSongs"]).To(BeEquivalentTo(2))
		Expect(result["songCount"]).To(BeEquivalentTo(2))
	})

	It("preserves envelope metadata and sibling result sections byte-for-byte", func() {
		out := mergeInto(obj{
			"subsonic-response": obj{
				"status":        "ok",
				"version":       "1.16.1",
				"type":          "navidrome",
				"serverVersion": "0.54.1",
				"searchResult3": obj{
					"artist": []interface{}{obj{"id": "ar-1", "name": "Daft Punk"}},
					"album":  []interface{}{obj{"id": "al-9"}},
					"song":   []interface{}{obj{"id": "1", "customField": "kept"}},
				},
			},
		}, []subsonic.SongRecord{song("ext_7")})

		resp := out["subsonic-response"].(obj)
		Expect(resp["type"]).To(Equal("navidrome"))
		Expect(resp["serverVersion"]).To(Equal("0.54.1"))

		result := searchResult(out, "searchResult3")
		Expect(result["artist"]).To(HaveLen(1))
		Expect(result["album"]).To(HaveLen(1))
		Expect(result["song"].([]interface{})[0].(obj)["customField"]).To(Equal("kept"))
	})

	It("merges minimal documents that omit status and version", func() {
		merged, ok, err := subsonic.MergeSearch(
			[]byte(`{"subsonic-response":{"searchResult3":{"song":[{"id":"1"}]}}}`),
			[]subsonic.SongRecord{song("ext_42")},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		var out obj
		Expect(json.Unmarshal(merged, &out)).To(Succeed())
		result := searchResult(out, "searchResult3")
		songs := result["song"].([]interface{})
		Expect(songs).To(HaveLen(2))
		Expect(songs[0].(obj)["id"]).To(Equal("1"))
		Expect(songs[1].(obj)["id"]).To(Equal("ext_42"))
		Expect(result["totalSongs"]).To(BeEquivalentTo(2))
	})

	It("merges into searchResult2 when that is the section present", func() {
		out := mergeInto(obj{
			"subsonic-response": obj{
				"status":  "ok",
				"version": "1.16.1",
				"searchResult2": obj{
					"song": []interface{}{obj{"id": "1"}},
				},
			},
		}, []subsonic.SongRecord{song("ext_42")})

		result := searchResult(out, "searchResult2")
		Expect(result["song"]).To(HaveLen(2))
		Expect(result["totalSongs"]).To(BeEquivalentTo(2))
	})

	DescribeTable("refuses documents it cannot merge",
		func(primary string) {
			_, ok, err := subsonic.MergeSearch([]byte(primary), []subsonic.SongRecord{song("ext_1")})
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		},
		Entry("not JSON", `<html>502 Bad Gateway</html>`),
		Entry("no subsonic-response wrapper", `{"status":"ok"}`),
		Entry("failed status", `{"subsonic-response":{"status":"failed","version":"1.16.1"}}`),
		Entry("malformed status", `{"subsonic-response":{"status":7,"searchResult3":{}}}`),
		Entry("no search result section", `{"subsonic-response":{"status":"ok","version":"1.16.1"}}`),
	)
})

var _ = Describe("Envelopes", func() {
	It("OK reports protocol success", func() {
		e := subsonic.OK()
		Expect(e.Response.Status).To(Equal("ok"))
		Expect(e.Response.Version).To(Equal(subsonic.Version))
		Expect(e.Response.Error).To(BeNil())
	})

	It("Ping carries the proxy identity", func() {
		e := subsonic.Ping()
		Expect(e.Response.Type).To(Equal(subsonic.ProxyType))
		Expect(e.Response.ServerVersion).To(Equal(subsonic.ProxyVersion))
	})

	It("Failure carries the protocol error element", func() {
		e := subsonic.Failure(subsonic.ErrorDataNotFound, "Cover art not found")
		Expect(e.Response.Status).To(Equal("failed"))
		Expect(e.Response.Error.Code).To(Equal(70))
		Expect(e.Response.Error.Message).To(Equal("Cover art not found"))
	})

	It("marshals SongRecord with every required field present", func() {
		b, err := json.Marshal(subsonic.SongRecord{ID: "ext_1", Genres: []string{}})
		Expect(err).NotTo(HaveOccurred())
		var m obj
		Expect(json.Unmarshal(b, &m)).To(Succeed())
		for _, field := range []string{
			"id", "parent", "isDir", "title", "album", "artist", "track",
			"year", "genre", "coverArt", "size", "contentType", "suffix",
			"duration", "bitRate", "path", "albumId", "artistId", "type",
			"isVideo", "created", "starred", "played", "playCount",
			"discNumber", "userRating",
		} {
			Expect(m).To(HaveKey(field), "missing %s", field)
		}
	})
})
