package pcap

// RMPP reassembly of multi-segment SA responses

import "sort"

type transferKey struct {
	slid uint16
	tid  uint64
}

type transfer struct {
	head     SAPayload
	haveHead bool
	segments map[uint32][]byte
	last     uint32
	lastLen  uint32
}

// reassembler joins RMPP DATA segments into one attribute payload per
// transaction. Segments may arrive out of order or be retransmitted; a
// transfer is dropped on STOP or ABORT.
type reassembler struct {
	pending map[transferKey]*transfer
}

func newReassembler() *reassembler {
	return &reassembler{pending: make(map[transferKey]*transfer)}
}

// add feeds one segment. It returns the complete payload once every segment
// up to the last one has been seen.
func (r *reassembler) add(p SAPayload, sa *SA) (SAPayload, bool) {
	key := transferKey{slid: p.SLID, tid: p.TID}

	switch sa.RMPPType {
	case RMPPTypeData:
	case RMPPTypeStop, RMPPTypeAbort:
		delete(r.pending, key)
		return SAPayload{}, false
	default:
		return SAPayload{}, false
	}

	t := r.pending[key]
	if t == nil {
		t = &transfer{segments: make(map[uint32][]byte)}
		r.pending[key] = t
	}

	seg := sa.Segment()
	if seg == 0 {
		seg = 1
	}
	t.segments[seg] = append([]byte(nil), p.Data...)
	if sa.First() || seg == 1 {
		t.head = p
		t.haveHead = true
	}
	if sa.Last() {
		t.last = seg
		t.lastLen = sa.PayloadLength()
	}

	if t.last == 0 || !t.haveHead || uint32(len(t.segments)) < t.last {
		return SAPayload{}, false
	}
	for i := uint32(1); i <= t.last; i++ {
		if _, ok := t.segments[i]; !ok {
			return SAPayload{}, false
		}
	}

	delete(r.pending, key)
	return t.assemble(), true
}

// assemble concatenates segments 1..last. The last segment's payload length
// counts its SA header, so the attribute bytes it carries are that length
// minus SAHeaderLen.
func (t *transfer) assemble() SAPayload {
	out := t.head
	out.Segments = int(t.last)
	out.Data = nil
	for i := uint32(1); i <= t.last; i++ {
		data := t.segments[i]
		if i == t.last && t.lastLen > SAHeaderLen {
			if n := int(t.lastLen - SAHeaderLen); n < len(data) {
				data = data[:n]
			}
		}
		out.Data = append(out.Data, data...)
	}
	return out
}

// incomplete returns the transactions still waiting for segments, ordered
// by transaction id.
func (r *reassembler) incomplete() []uint64 {
	tids := make([]uint64, 0, len(r.pending))
	for key := range r.pending {
		tids = append(tids, key.tid)
	}
	sort.Slice(tids, func(i, j int) bool { return tids[i] < tids[j] })
	return tids
}
