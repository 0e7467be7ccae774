// Package comments defines the comment table that flows through the analysis stages.
//
// A Table is a value: stages receive a table and return a new one with extra columns,
// the input is never modified.
package comments

import (
	"encoding/json"
	"fmt"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
)

// Column names a field of Record. The names match the JSON keys.
type Column string

const (
	ColComment    Column = "comment"
	ColUserName   Column = "user_name"
	ColDate       Column = "date"
	ColReplies    Column = "replies"
	ColTranslated Column = "translated"
	ColSentiment  Column = "sentiment"
	ColCleaned    Column = "cleaned_comment"
)

// Sentiment is the discrete label assigned by the sentiment stage.
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Negative Sentiment = "Negative"
	Neutral  Sentiment = "Neutral"
)

// Sentiments lists the labels in display order.
var Sentiments = []Sentiment{Positive, Negative, Neutral}

// ParseSentiment matches s against the known labels, case-sensitively.
func ParseSentiment(s string) (Sentiment, bool) {
	for _, label := range Sentiments {
		if string(label) == s {
			return label, true
		}
	}

	return "", false
}

// Record is one top-level comment.
type Record struct {
	Comment        string    `json:"comment"`
	UserName       string    `json:"user_name"`
	Date           string    `json:"date"`
	Replies        []string  `json:"replies"`
	Translated     string    `json:"translated,omitempty"`
	Sentiment      Sentiment `json:"sentiment,omitempty"`
	CleanedComment string    `json:"cleaned_comment,omitempty"`
}

func (r Record) clone() Record {
	out := r
	out.Replies = make([]string, len(r.Replies))
	copy(out.Replies, r.Replies)

	return out
}

type columnSet map[Column]struct{}

func (s columnSet) with(cols ...Column) columnSet {
	out := make(columnSet, len(s)+len(cols))
	for c := range s {
		out[c] = struct{}{}
	}

	for _, c := range cols {
		out[c] = struct{}{}
	}

	return out
}

// Table is an ordered sequence of records in fetch order together with the set of
// populated columns. The zero Table has no columns.
type Table struct {
	records []Record
	columns columnSet
}

// NewTable builds a table with the base columns (comment, user_name, date, replies)
// populated. Records are copied.
func NewTable(records []Record) Table {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = Record{
			Comment:  r.Comment,
			UserName: r.UserName,
			Date:     r.Date,
			Replies:  append([]string{}, r.Replies...),
		}
	}

	return Table{
		records: out,
		columns: columnSet{}.with(ColComment, ColUserName, ColDate, ColReplies),
	}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.records)
}

// Has reports whether col is populated.
func (t Table) Has(col Column) bool {
	_, ok := t.columns[col]
	return ok
}

// Require returns apperrors.ErrMissingColumn naming the first absent column.
func (t Table) Require(cols ...Column) error {
	for _, c := range cols {
		if !t.Has(c) {
			return fmt.Errorf("%w: %q", apperrors.ErrMissingColumn, c)
		}
	}

	return nil
}

// Records returns a deep copy of the rows.
func (t Table) Records() []Record {
	out := make([]Record, len(t.records))
	for i, r := range t.records {
		out[i] = r.clone()
	}

	return out
}

// Record returns a copy of row i.
func (t Table) Record(i int) Record {
	return t.records[i].clone()
}

// Comments returns the raw comment column.
func (t Table) Comments() []string {
	out := make([]string, len(t.records))
	for i, r := range t.records {
		out[i] = r.Comment
	}

	return out
}

// Translated returns the translated column. It is nil when the column is absent.
func (t Table) Translated() []string {
	if !t.Has(ColTranslated) {
		return nil
	}

	out := make([]string, len(t.records))
	for i, r := range t.records {
		out[i] = r.Translated
	}

	return out
}

// WithTranslated returns a copy of t with the translated column set to values.
func (t Table) WithTranslated(values []string) (Table, error) {
	if err := t.checkLen(ColTranslated, len(values)); err != nil {
		return Table{}, err
	}

	return t.derive(ColTranslated, func(i int, r *Record) { r.Translated = values[i] }), nil
}

// WithSentiment returns a copy of t with the sentiment column set to labels.
// The translated column must already be present.
func (t Table) WithSentiment(labels []Sentiment) (Table, error) {
	if err := t.Require(ColTranslated); err != nil {
		return Table{}, err
	}

	if err := t.checkLen(ColSentiment, len(labels)); err != nil {
		return Table{}, err
	}

	return t.derive(ColSentiment, func(i int, r *Record) { r.Sentiment = labels[i] }), nil
}

// WithCleaned returns a copy of t with the cleaned_comment column set to values.
func (t Table) WithCleaned(values []string) (Table, error) {
	if err := t.checkLen(ColCleaned, len(values)); err != nil {
		return Table{}, err
	}

	return t.derive(ColCleaned, func(i int, r *Record) { r.CleanedComment = values[i] }), nil
}

func (t Table) checkLen(col Column, n int) error {
	if n != len(t.records) {
		return fmt.Errorf("%w: %q has %d values for %d rows", apperrors.ErrLengthMismatch, col, n, len(t.records))
	}

	return nil
}

func (t Table) derive(col Column, set func(i int, r *Record)) Table {
	records := t.Records()
	for i := range records {
		set(i, &records[i])
	}

	return Table{records: records, columns: t.columns.with(col)}
}

// MarshalJSON encodes the table as an array of records.
func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Records())
}
