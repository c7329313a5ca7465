package trackers

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Header is the header row of files written by a CSV Tracker
var Header = []string{"Episode", "Cumulative Reward", "Epsilon",
	"Average Q-Value", "Steps"}

// CSV writes a row for every Every'th episode to a CSV file. Rows are
// flushed as they are tracked, so the file can be read while an
// experiment is running.
type CSV struct {
	file   *os.File
	writer *csv.Writer
	every  int
}

// NewCSV creates filename, writes the header row, and returns a CSV
// Tracker writing the episodes whose index is a multiple of every
func NewCSV(filename string, every int) (*CSV, error) {
	if every < 1 {
		return nil, fmt.Errorf("newCSV: interval %v must be positive", every)
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("newCSV: %w", err)
	}

	c := &CSV{file: file, writer: csv.NewWriter(file), every: every}
	if err := c.write(Header); err != nil {
		file.Close()
		return nil, fmt.Errorf("newCSV: %w", err)
	}
	return c, nil
}

// Track writes the row of r if r.Episode is a multiple of the
// tracker's interval
func (c *CSV) Track(r Record) error {
	if r.Episode%c.every != 0 {
		return nil
	}

	row := []string{
		strconv.Itoa(r.Episode),
		strconv.FormatFloat(r.Return, 'g', -1, 64),
		strconv.FormatFloat(r.Epsilon, 'g', -1, 64),
		strconv.FormatFloat(r.MeanValue, 'g', -1, 64),
		strconv.Itoa(r.Steps),
	}
	if err := c.write(row); err != nil {
		return fmt.Errorf("track: %w", err)
	}
	return nil
}

func (c *CSV) write(row []string) error {
	if err := c.writer.Write(row); err != nil {
		return err
	}
	c.writer.Flush()
	return c.writer.Error()
}

// Save flushes and closes the CSV file
func (c *CSV) Save() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.file.Close()
		return fmt.Errorf("save: %w", err)
	}
	return c.file.Close()
}

// ReadCSV reads the Records of a file written by a CSV Tracker
func ReadCSV(filename string) ([]Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("readCSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(Header)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("readCSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("readCSV: %v has no header", filename)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("readCSV: row %v: %w", i+2, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	var r Record
	var err error

	if r.Episode, err = strconv.Atoi(row[0]); err != nil {
		return Record{}, err
	}
	if r.Return, err = strconv.ParseFloat(row[1], 64); err != nil {
		return Record{}, err
	}
	if r.Epsilon, err = strconv.ParseFloat(row[2], 64); err != nil {
		return Record{}, err
	}
	if r.MeanValue, err = strconv.ParseFloat(row[3], 64); err != nil {
		return Record{}, err
	}
	if r.Steps, err = strconv.Atoi(row[4]); err != nil {
		return Record{}, err
	}
	return r, nil
}
