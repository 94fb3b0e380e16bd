package moderation

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"

	"alumnihub/errors"
)

//go:embed censored/*.txt
var censoredFS embed.FS

// Wordlist is the merged dictionary plus the languages it came from,
// kept for startup logging.
type Wordlist struct {
	Words     []string
	Languages []string
}

// LoadWordlist parses the embedded per-language dictionaries into one
// deduplicated word list. One .txt file per language, one word per line.
func LoadWordlist() (*Wordlist, error) {
	entries, err := fs.ReadDir(censoredFS, "censored")
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := censoredFS.ReadFile("censored/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// Scanner rather than strings.Split so \r\n files parse cleanly.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	return &Wordlist{Words: words, Languages: languages}, nil
}
