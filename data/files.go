package data

import (
	"context"
	"fmt"

	"github.com/ceejbot/modcache/nexus"
)

// FileInfo describes one downloadable file belonging to a mod.
type FileInfo struct {
	CategoryID           int64   `json:"category_id"`
	CategoryName         *string `json:"category_name"`
	ChangelogHTML        *string `json:"changelog_html"`
	ContentPreviewLink   string  `json:"content_preview_link"`
	Description          string  `json:"description"`
	ExternalVirusScanURL string  `json:"external_virus_scan_url"`
	FileID               int64   `json:"file_id"`
	FileName             string  `json:"file_name"`
	ID                   []int64 `json:"id"`
	IsPrimary            bool    `json:"is_primary"`
	ModVersion           string  `json:"mod_version"`
	Name                 string  `json:"name"`
	SizeInBytes          int64   `json:"size_in_bytes"`
	SizeKB               int64   `json:"size_kb"`
	Size                 int64   `json:"size"`
	UploadedTime         string  `json:"uploaded_time"`
	UploadedTimestamp    int64   `json:"uploaded_timestamp"`
	UUID                 *string `json:"uuid"`
	Version              string  `json:"version"`
}

// FileUpdate records one file superseding another.
type FileUpdate struct {
	OldFileID         int64  `json:"old_file_id"`
	NewFileID         int64  `json:"new_file_id"`
	OldFileName       string `json:"old_file_name"`
	NewFileName       string `json:"new_file_name"`
	UploadedTimestamp int64  `json:"uploaded_timestamp"`
	UploadedTime      string `json:"uploaded_time"`
}

// Files is the full file list for one mod. The identifying fields are
// backfilled before caching; the response does not carry them.
type Files struct {
	DomainName  string       `json:"domain_name"`
	ModID       int64        `json:"mod_id"`
	Files       []FileInfo   `json:"files"`
	FileUpdates []FileUpdate `json:"file_updates"`
	Tag         string       `json:"etag"`
}

func (f *Files) CacheKey() string {
	return CompoundKey{Domain: f.DomainName, ModID: f.ModID}.String()
}

func (f *Files) ETag() string        { return f.Tag }
func (f *Files) SetETag(etag string) { f.Tag = etag }

// PrimaryFile returns the file the author marked primary, or nil when no
// file carries the flag.
func (f *Files) PrimaryFile() *FileInfo {
	for i := range f.Files {
		if f.Files[i].IsPrimary {
			return &f.Files[i]
		}
	}
	return nil
}

// FileByID finds a file in the list by its file id.
func (f *Files) FileByID(id int64) *FileInfo {
	for i := range f.Files {
		if f.Files[i].FileID == id {
			return &f.Files[i]
		}
	}
	return nil
}

type filesWire struct {
	Files       []FileInfo   `json:"files"`
	FileUpdates []FileUpdate `json:"file_updates"`
}

// ModFiles describes how file lists are cached and fetched.
var ModFiles = Resource[Files, *Files]{
	Bucket: "files",
	Fetch: func(ctx context.Context, client *nexus.Client, key string, etag string) (*Files, string, error) {
		parsed, err := ParseCompoundKey(key)
		if err != nil {
			return nil, "", err
		}
		path := fmt.Sprintf("/v1/games/%s/mods/%d/files.json", parsed.Domain, parsed.ModID)
		wire, newEtag, err := nexus.Get[filesWire](ctx, client, path, etag)
		if err != nil || wire == nil {
			return nil, newEtag, err
		}
		return &Files{
			DomainName:  parsed.Domain,
			ModID:       parsed.ModID,
			Files:       wire.Files,
			FileUpdates: wire.FileUpdates,
		}, newEtag, nil
	},
}
