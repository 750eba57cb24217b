// Package scanner walks a music directory and turns audio files into
// catalog.Song records ready to feed a searchindex.Builder.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xZaitsev/polaris/pkg/catalog"
	"github.com/dhowden/tag"
	"golang.org/x/sync/errgroup"
)

// Scan walks dir recursively, reads tags from every audio file it finds,
// and returns the resulting songs. Up to workers files are read
// concurrently; a tag-read failure on one file is logged and skipped
// rather than aborting the whole scan.
func Scan(ctx context.Context, dir string, workers int) ([]catalog.Song, error) {
	if workers < 1 {
		workers = 1
	}

	var paths []string
	if err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			slog.Warn("walk error", "path", path, "err", walkErr)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if isAudioFile(path) {
			paths = append(paths, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	songs := make([]catalog.Song, len(paths))
	ok := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			song, err := songFromPath(dir, path)
			if err != nil {
				slog.Warn("read tags failed", "path", path, "err", err)
				return nil
			}
			songs[i] = song
			ok[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]catalog.Song, 0, len(songs))
	for i, song := range songs {
		if ok[i] {
			out = append(out, song)
		}
	}
	return out, nil
}

// songFromPath reads one audio file's tags and builds a catalog.Song.
// VirtualPath is the file's path relative to root, forward-slash
// separated, regardless of host OS.
func songFromPath(root, path string) (catalog.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Song{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return catalog.Song{}, fmt.Errorf("read tags: %w", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	virtualPath := filepath.ToSlash(rel)

	song := catalog.Song{
		VirtualPath: virtualPath,
		Title:       m.Title(),
		Album:       m.Album(),
	}
	if artist := m.Artist(); artist != "" {
		song.ArtistNames = []string{artist}
	}
	if albumArtist := m.AlbumArtist(); albumArtist != "" {
		song.AlbumArtists = []string{albumArtist}
	}
	if genre := m.Genre(); genre != "" {
		song.Genres = []string{genre}
	}
	if year := m.Year(); year > 0 {
		y := int32(year)
		song.Year = &y
	}
	if track, _ := m.Track(); track > 0 {
		n := int32(track)
		song.TrackNumber = &n
	}
	if disc, _ := m.Disc(); disc > 0 {
		n := int32(disc)
		song.DiscNumber = &n
	}
	return song, nil
}

var audioExtensions = map[string]bool{
	".flac": true,
	".wav":  true,
	".mp3":  true,
	".aiff": true,
	".aif":  true,
	".m4a":  true,
	".ogg":  true,
}

func isAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}
