package buffer

// Bias controls how a tracked position behaves when text is inserted
// exactly at the position, and where a position inside a replaced span
// lands.
type Bias uint8

const (
	// TrackBackward keeps the position before text inserted at it and
	// collapses positions inside a replaced span to the span start.
	TrackBackward Bias = iota

	// TrackForward pushes the position past text inserted at it and
	// collapses positions inside a replaced span past the new text.
	TrackForward
)

// TranslateOffset maps an offset captured on an older snapshot onto a
// newer snapshot of the same buffer by walking the edit chain between
// them. Returns false if target is not a descendant of from.
func TranslateOffset(offset ByteOffset, from, target *Snapshot, bias Bias) (ByteOffset, bool) {
	for cur := from; cur != target; {
		batch := cur.succ
		if batch == nil {
			return offset, false
		}
		offset = transformThroughBatch(offset, batch.edits, bias)
		cur = batch.to
	}
	return offset, true
}

// TranslateRange maps a range forward. The start tracks backward and
// the end tracks forward, so text inserted at either boundary is
// absorbed into the range.
func TranslateRange(r Range, from, target *Snapshot) (Range, bool) {
	start, ok := TranslateOffset(r.Start, from, target, TrackBackward)
	if !ok {
		return r, false
	}
	end, ok := TranslateOffset(r.End, from, target, TrackForward)
	if !ok {
		return r, false
	}
	if start > end {
		start, end = end, start
	}
	return Range{Start: start, End: end}, true
}

// TranslateRangeExclusive maps a range forward without absorbing text
// inserted at its boundaries.
func TranslateRangeExclusive(r Range, from, target *Snapshot) (Range, bool) {
	start, ok := TranslateOffset(r.Start, from, target, TrackForward)
	if !ok {
		return r, false
	}
	end, ok := TranslateOffset(r.End, from, target, TrackBackward)
	if !ok {
		return r, false
	}
	if start > end {
		start, end = end, start
	}
	return Range{Start: start, End: end}, true
}

// transformThroughBatch maps an offset across one batch of
// simultaneous edits. Edits are sorted by ascending start and
// non-overlapping, all expressed against the batch's source snapshot.
func transformThroughBatch(offset ByteOffset, edits []Edit, bias Bias) ByteOffset {
	var delta ByteOffset
	for _, e := range edits {
		if e.Range.IsEmpty() && e.Range.Start == offset {
			if bias == TrackForward {
				return offset + delta + ByteOffset(len(e.NewText))
			}
			return offset + delta
		}
		if e.Range.End <= offset {
			delta += e.Delta()
			continue
		}
		if e.Range.Start >= offset {
			break
		}
		// offset is strictly inside the replaced span
		if bias == TrackForward {
			return e.Range.Start + delta + ByteOffset(len(e.NewText))
		}
		return e.Range.Start + delta
	}
	return offset + delta
}
