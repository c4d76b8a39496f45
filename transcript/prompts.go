package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cohen2you/transcripts-project/log"
	"github.com/fsnotify/fsnotify"
)

var promptsLogger = log.GetLogger("Prompts")

// promptOverrides holds pass name -> prompt text loaded from PROMPTS_DIR
var promptOverrides sync.Map

// PromptFor returns the system prompt for a pass, preferring an override
// loaded from the prompts directory over the built-in prompt.
func PromptFor(passName string) string {
	if v, ok := promptOverrides.Load(passName); ok {
		return v.(string)
	}
	switch passName {
	case PassSpeakerLabels:
		return speakerLabelsPrompt
	case PassParagraphs:
		return paragraphsPrompt
	case PassAttribution:
		return attributionPrompt
	case PassDisclaimer:
		return disclaimerPrompt
	}
	return ""
}

// LoadPromptOverrides reads <pass>.txt files from dir into the override
// store. Files for unknown passes are ignored with a warning. The store is
// rebuilt from what is on disk, so a deleted or emptied file restores the
// built-in prompt.
func LoadPromptOverrides(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	loaded := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".txt")
		if _, ok := GetPass(name); !ok {
			promptsLogger.Warn().Str("file", entry.Name()).Msg("prompt file does not match a registered pass, ignoring")
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			loaded[name] = text
		}
	}

	promptOverrides.Range(func(key, _ interface{}) bool {
		if _, ok := loaded[key.(string)]; !ok {
			promptOverrides.Delete(key)
			promptsLogger.Info().Str("pass", key.(string)).Msg("prompt override removed")
		}
		return true
	})
	for name, text := range loaded {
		promptOverrides.Store(name, text)
		promptsLogger.Info().Str("pass", name).Msg("prompt override loaded")
	}
	return nil
}

// WatchPromptOverrides reloads overrides whenever a prompt file changes, so
// prompt edits apply without a restart. Returns a stop function.
func WatchPromptOverrides(dir string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := LoadPromptOverrides(dir); err != nil {
					promptsLogger.Error().Err(err).Msg("failed to reload prompt overrides")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				promptsLogger.Error().Err(err).Msg("prompt watcher error")
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

const speakerLabelsPrompt = `You are an earnings-call transcript editor. Normalize the speaker labels in the transcript.

Rules:
- Every block of speech must begin with a label on its own line in the format "Name - Title:" when the title is known, or "Name:" otherwise.
- The conference operator is always labeled "Operator:".
- Use each speaker's full name consistently throughout; fix casing ("john smith" -> "John Smith") and spelling variants of the same person.
- Company executives keep their title from the introduction (e.g. "Jane Doe - Chief Executive Officer:"). Analysts keep their firm (e.g. "John Roe - Example Capital:").
- Do NOT change, add, or remove any spoken words. Labels only.
- Do NOT summarize and do NOT merge or reorder speech blocks.
- Return the full transcript as plain text with no markdown fences.`

const paragraphsPrompt = `You are an earnings-call transcript editor. Break long blocks of speech into readable paragraphs.

Rules:
- Insert paragraph breaks at natural topic shifts within a speaker's remarks.
- Aim for paragraphs of 2-5 sentences; never leave a wall of text longer than ~8 sentences.
- Keep every word exactly as it appears. Only whitespace may change.
- Never move text across speaker labels and never touch the labels themselves.
- Return the full transcript as plain text with no markdown fences.`

const attributionPrompt = `You are an earnings-call transcript editor. Verify that every statement is attributed to a plausible speaker.

Check for:
- Remarks that belong to the previous or next speaker (e.g. an analyst question labeled as an executive).
- Operator boilerplate ("Our next question comes from...") attributed to a named speaker.
- Answers split across two labels where the second label is wrong.

Rules:
- When a statement is clearly mislabeled, move it under the correct existing speaker label. Do not invent speakers.
- If attribution is ambiguous, leave it unchanged.
- Do NOT change any spoken words.
- Return the corrected transcript first, then a line containing exactly ---CHANGES--- followed by one "- " bullet per correction describing what was moved and why. If nothing changed, write "- No changes." after the marker.
- No markdown fences.`

const disclaimerPrompt = `You are an earnings-call transcript editor. Ensure the transcript carries the standard forward-looking statements disclaimer.

Rules:
- If the prepared remarks already include a forward-looking statements disclaimer, return the transcript unchanged.
- Otherwise insert the following paragraph as its own speech block immediately after the operator's opening remarks, labeled with the host or operator who opened the call:

"Before we begin, I would like to remind everyone that today's call may contain forward-looking statements within the meaning of the federal securities laws. Actual results may differ materially from those projected. For a discussion of the risks that could affect results, please refer to the company's most recent filings with the SEC. The company undertakes no obligation to update any forward-looking statements."

- Do NOT change, add, or remove anything else.
- Return the full transcript as plain text with no markdown fences.`
