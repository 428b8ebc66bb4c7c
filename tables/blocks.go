// Package tables wraps upstream-normalized table records as content
// blocks. Cell-merge resolution and coordinate normalization happen
// upstream; no structural inference is performed at this layer.
package tables

import "github.com/tsawler/docstruct/model"

// BuildBlocks creates one table block per record. The cell matrix is
// carried unchanged.
func BuildBlocks(records []model.TableRecord) []*model.ContentBlock {
	blocks := make([]*model.ContentBlock, 0, len(records))
	for i := range records {
		t := &records[i]
		blocks = append(blocks, model.NewTableBlock(t.ID, &model.TableData{
			DocIndex: t.DocIndex,
			Rows:     t.RowCount(),
			Cols:     t.ColCount(),
			Cells:    t.Cells,
		}))
	}
	return blocks
}
