package formats

import "fmt"

// Fixed sample payloads showing callers the expected shape per format.
// Pure constant data with no lifecycle.

const jsonTemplate = `{
  "title": "Sample Deck",
  "description": "Description of your deck",
  "cards": [
    {
      "front": "Question 1",
      "back": "Answer 1",
      "tags": ["tag1", "tag2"]
    },
    {
      "front": "Question 2",
      "back": "Answer 2",
      "tags": ["tag3"]
    }
  ]
}
`

const csvTemplate = `Front,Back,Tags,Explanation,Difficulty
Question 1,Answer 1,"tag1,tag2",Optional explanation,1
Question 2,Answer 2,tag3,Another explanation,2
`

const markdownTemplate = `# Deck Title

Optional deck description goes here.

---

## Card 1

**Front:** Question 1

**Back:** Answer 1

---

## Card 2

**Front:** Question 2

**Back:** Answer 2

---
`

const ankiTemplate = `{
  "name": "Sample Deck",
  "desc": "Description of your deck",
  "cards": [],
  "notes": [
    {"id": 1, "guid": "", "mid": 1, "fields": ["Question 1", "Answer 1"], "tags": []},
    {"id": 2, "guid": "", "mid": 1, "fields": ["Question 2", "Answer 2"], "tags": []}
  ],
  "models": [
    {
      "id": 1,
      "name": "Basic",
      "flds": [{"name": "Front", "ord": 0}, {"name": "Back", "ord": 1}],
      "tmpls": [{"name": "Card 1", "qfmt": "{{Front}}", "afmt": "{{FrontSide}}<hr id=\"answer\">{{Back}}"}]
    }
  ]
}
`

// Template returns the sample import payload for a format.
func Template(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return []byte(jsonTemplate), nil
	case FormatCSV:
		return []byte(csvTemplate), nil
	case FormatAnki:
		return []byte(ankiTemplate), nil
	case FormatMarkdown:
		return []byte(markdownTemplate), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
