/*
Copyright © 2023 Zak Reynolds <zak.reynolds@zakjr.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

func (a *app) transcriptDir() (string, error) {
	if dir := a.settings.GetString("transcript-dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kessler-assist", "transcripts"), nil
}

// writeTranscript logs the conversation to a markdown file when
// --transcript is set.
func (a *app) writeTranscript(s *session) error {
	if !a.settings.GetBool("transcript") || len(s.context) == 0 {
		return nil
	}
	dir, err := a.transcriptDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	currentTime := a.now().Local().Format("2006-01-02--15-04-05-MST")
	logName := filepath.Join(dir, currentTime+".md")
	content := "# " + s.model + "\n\n" + currentTime
	for _, message := range s.context {
		content += div(message.Role) + message.Content
	}
	content += "\n"

	if err := os.WriteFile(logName, []byte(content), 0o644); err != nil {
		return fmt.Errorf("could not write transcript: %w", err)
	}
	log.Debug().Str("path", logName).Msg("wrote transcript")
	return nil
}

// latestTranscript returns the most recently modified transcript, or "" if
// there is none.
func (a *app) latestTranscript() (string, error) {
	dir, err := a.transcriptDir()
	if err != nil {
		return "", err
	}
	var latestFile string
	var latestTime time.Time

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && info.ModTime().After(latestTime) {
			latestFile = path
			latestTime = info.ModTime()
		}
		return nil
	})
	if os.IsNotExist(err) {
		return "", nil
	}
	return latestFile, err
}

func div(title string) string {
	return "\n\n## " + title + "\n\n"
}
