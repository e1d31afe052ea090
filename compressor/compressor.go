// Package compressor packs sparse parsing tables.
//
// A table is packed in two steps. Rows having the same entries are merged into one unique row, and then the unique
// rows are overlapped with each other by row displacement so that non-empty entries never collide.
package compressor

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// EmptyValue is the entry meaning an error action or no transition.
const EmptyValue = 0

// forbiddenOwner marks a slot of Entries no unique row owns.
const forbiddenOwner = -1

type Table struct {
	RowCount int `json:"row_count"`
	ColCount int `json:"col_count"`

	// RowNums maps an original row to its unique row.
	RowNums []int `json:"row_nums"`

	// Displacement maps a unique row to the offset of its first column in Entries.
	Displacement []int `json:"displacement"`

	Entries []int `json:"entries"`

	// Bounds holds the unique row owning each slot of Entries.
	Bounds []int `json:"bounds"`
}

// Compress packs a row-major table having `colCount` columns. The original entries are left untouched.
func Compress(entries []int, colCount int) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a table has no entries")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("a column count must be >=1; got: %v", colCount)
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}
	rowCount := len(entries) / colCount

	uniqueRows, rowNums := mergeRows(entries, rowCount, colCount)
	packed, bounds, disp := displaceRows(uniqueRows, colCount)

	return &Table{
		RowCount:     rowCount,
		ColCount:     colCount,
		RowNums:      rowNums,
		Displacement: disp,
		Entries:      packed,
		Bounds:       bounds,
	}, nil
}

func mergeRows(entries []int, rowCount, colCount int) ([][]int, []int) {
	var uniqueRows [][]int
	rowNums := make([]int, rowCount)
	hash2RowNum := map[string]int{}
	for row := 0; row < rowCount; row++ {
		start := row * colCount
		var rowHash string
		{
			buf := make([]byte, 0, colCount*binary.MaxVarintLen64)
			for _, v := range entries[start : start+colCount] {
				buf = binary.AppendVarint(buf, int64(v))
			}
			rowHash = string(buf)
		}
		rowNum, ok := hash2RowNum[rowHash]
		if !ok {
			rowNum = len(uniqueRows)
			hash2RowNum[rowHash] = rowNum
			uniqueRows = append(uniqueRows, append([]int{}, entries[start:start+colCount]...))
		}
		rowNums[row] = rowNum
	}
	return uniqueRows, rowNums
}

type rowInfo struct {
	rowNum      int
	nonEmptyCol []int
}

// displaceRows places denser rows first; each row takes the lowest offset where its non-empty columns hit only
// empty slots.
func displaceRows(rows [][]int, colCount int) ([]int, []int, []int) {
	infos := make([]rowInfo, len(rows))
	for i, r := range rows {
		infos[i].rowNum = i
		for col, v := range r {
			if v != EmptyValue {
				infos[i].nonEmptyCol = append(infos[i].nonEmptyCol, col)
			}
		}
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return len(infos[i].nonEmptyCol) > len(infos[j].nonEmptyCol)
	})

	size := len(rows) * colCount
	entries := make([]int, size)
	bounds := make([]int, size)
	for i := range bounds {
		bounds[i] = forbiddenOwner
	}
	disp := make([]int, len(rows))
	bottom := colCount
	for _, info := range infos {
		if len(info.nonEmptyCol) == 0 {
			continue
		}
		next := 0
		for {
			overlapped := false
			for _, col := range info.nonEmptyCol {
				if bounds[next+col] != forbiddenOwner {
					overlapped = true
					break
				}
			}
			if !overlapped {
				break
			}
			next++
		}

		disp[info.rowNum] = next
		for _, col := range info.nonEmptyCol {
			entries[next+col] = rows[info.rowNum][col]
			bounds[next+col] = info.rowNum
		}
		if next+colCount > bottom {
			bottom = next + colCount
		}
	}

	return entries[:bottom], bounds[:bottom], disp
}

// Lookup returns an entry of the original table.
func (t *Table) Lookup(row, col int) (int, error) {
	if row < 0 || row >= t.RowCount || col < 0 || col >= t.ColCount {
		return EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	uRow := t.RowNums[row]
	i := t.Displacement[uRow] + col
	if t.Bounds[i] != uRow {
		return EmptyValue, nil
	}
	return t.Entries[i], nil
}

// Expand restores the original row-major table.
func (t *Table) Expand() []int {
	entries := make([]int, t.RowCount*t.ColCount)
	for row := 0; row < t.RowCount; row++ {
		for col := 0; col < t.ColCount; col++ {
			entries[row*t.ColCount+col], _ = t.Lookup(row, col)
		}
	}
	return entries
}

// Size returns the number of integers the packed table holds.
func (t *Table) Size() int {
	return len(t.RowNums) + len(t.Displacement) + len(t.Entries) + len(t.Bounds)
}
