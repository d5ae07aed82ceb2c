package waveinfo

// See http://bwfmetaedit.sourceforge.net/listinfo.html
var infoLabels = map[[4]byte]string{
	{'I', 'A', 'R', 'L'}: "Archival Location",
	{'I', 'A', 'R', 'T'}: "Artist",
	{'I', 'C', 'M', 'S'}: "Commissioned",
	{'I', 'C', 'M', 'T'}: "Comments",
	{'I', 'C', 'O', 'P'}: "Copyright",
	{'I', 'C', 'R', 'D'}: "Creation date",
	{'I', 'C', 'R', 'P'}: "Cropped",
	{'I', 'D', 'I', 'M'}: "Dimensions",
	{'I', 'D', 'P', 'I'}: "Dots Per Inch",
	{'I', 'E', 'N', 'G'}: "Engineer",
	{'I', 'G', 'N', 'R'}: "Genre",
	{'I', 'K', 'E', 'Y'}: "Keywords",
	{'I', 'L', 'G', 'T'}: "Lightness",
	{'I', 'M', 'E', 'D'}: "Medium",
	{'I', 'N', 'A', 'M'}: "Name",
	{'I', 'P', 'L', 'T'}: "Palette Setting",
	{'I', 'P', 'R', 'D'}: "Product",
	{'I', 'S', 'B', 'J'}: "Subject",
	{'I', 'S', 'F', 'T'}: "Software",
	{'I', 'S', 'H', 'P'}: "Sharpness",
	{'I', 'S', 'R', 'C'}: "Source",
	{'I', 'S', 'R', 'F'}: "Source Form",
	{'I', 'T', 'C', 'H'}: "Technician",
}

// InfoLabel returns the label of an INFO code such as "ISFT".
func InfoLabel(code string) (string, bool) {
	if len(code) != 4 {
		return "", false
	}

	var id [4]byte

	copy(id[:], code)
	label, ok := infoLabels[id]

	return label, ok
}

// ListChunk is a decoded LIST chunk. Tags is only populated for INFO lists and
// maps labels (see InfoLabel) to values.
type ListChunk struct {
	ListType [4]byte
	Tags     map[string]string
}

// IsInfo reports whether the list is an INFO list.
func (l *ListChunk) IsInfo() bool {
	return l != nil && l.ListType == CIDInfo
}

// DecodeListChunk decodes a LIST chunk. Entries with unknown codes or
// unreadable values are dropped. A malformed entry header ends the list,
// keeping the entries decoded before it.
func DecodeListChunk(ch Chunk) (*ListChunk, error) {
	if ch.ID != CIDList {
		return nil, &IncorrectChunkError{Expected: string(CIDList[:]), Actual: ch.IDString()}
	}

	r := ch.fields()

	listType, err := r.ascii("ListType", 4)
	if err != nil {
		return nil, err
	}

	out := &ListChunk{}
	copy(out.ListType[:], listType)

	if !out.IsInfo() {
		// Only INFO lists carry tags.
		return out, nil
	}

	out.Tags = map[string]string{}

	body := ch.Data[r.pos:]
	for len(body) > 0 {
		sub, err := PopChunk(&body)
		if err != nil {
			break
		}

		label, ok := infoLabels[sub.ID]
		if !ok {
			continue
		}

		value, err := sub.fields().zstring("Info value")
		if err != nil {
			continue
		}

		out.Tags[label] = value
	}

	return out, nil
}
