package services

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/soaringjerry/panelstats/internal/models"
)

// ExportStatisticsCSV renders one row per survey, keeping the order of rows.
func ExportStatisticsCSV(rows []models.SurveyStatistics) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"survey_id", "survey_name", "completes", "filtered", "rejected", "average_length"})
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.SurveyID),
			r.SurveyName,
			strconv.Itoa(r.NumberOfCompletes),
			strconv.Itoa(r.NumberOfFilteredParticipants),
			strconv.Itoa(r.NumberOfRejectedParticipants),
			strconv.FormatFloat(r.AverageLengthOfTime, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportPointsCSV renders a member's points per survey, sorted by survey id,
// followed by a total row.
func ExportPointsCSV(points map[int]int) ([]byte, error) {
	ids := make([]int, 0, len(points))
	for id := range points {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"survey_id", "points"})
	total := 0
	for _, id := range ids {
		total += points[id]
		if err := w.Write([]string{strconv.Itoa(id), strconv.Itoa(points[id])}); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{"total", strconv.Itoa(total)}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
