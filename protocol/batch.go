package protocol

// Batch collects complete packets and joins them into a single transport
// frame. Packets are self-delimiting, so no batch-level header is added and
// a receiver decodes them one after another until the frame is exhausted.
//
// Flushing is always explicit. A Batch is not safe for concurrent use.
type Batch struct {
	buf   []byte
	count int
}

// Push appends a copy of one packet's encoded bytes.
func (b *Batch) Push(pk []byte) {
	if len(pk) == 0 {
		return
	}
	b.buf = append(b.buf, pk...)
	b.count++
}

// PushWriter appends the packet held by w. w may be released afterwards.
func (b *Batch) PushWriter(w *Writer) {
	b.Push(w.Bytes())
}

// Len returns the number of pending packets.
func (b *Batch) Len() int {
	return b.count
}

// Size returns the number of pending bytes.
func (b *Batch) Size() int {
	return len(b.buf)
}

// Bytes returns the pending packets concatenated in push order without
// emptying the batch. The slice is valid until the next Push or Flush.
func (b *Batch) Bytes() []byte {
	if b.count == 0 {
		return nil
	}
	return b.buf
}

// Flush returns the pending packets concatenated in push order and empties
// the batch. It returns nil when nothing is pending. The returned slice is
// owned by the caller.
func (b *Batch) Flush() []byte {
	if b.count == 0 {
		return nil
	}

	out := b.buf
	batchFlushesTotal.Inc()
	batchPackets.Observe(float64(b.count))
	batchBytesTotal.Add(float64(len(out)))

	b.buf = nil
	b.count = 0
	return out
}
