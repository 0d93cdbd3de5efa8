package pgmap

import "encoding/xml"

// MappingInfo describes one mapping for diagnostics and docs.
type MappingInfo struct {
	Type             string `json:"type" yaml:"type" msgpack:"type" bson:"type" xml:"type"`
	DataTypeName     string `json:"data_type_name" yaml:"data_type_name" msgpack:"data_type_name" bson:"data_type_name" xml:"data_type_name"`
	MatchRequirement string `json:"match" yaml:"match" msgpack:"match" bson:"match" xml:"match"`
	Default          bool   `json:"default" yaml:"default" msgpack:"default" bson:"default" xml:"default"`
}

// Snapshot is the exported form of one family's registry.
type Snapshot struct {
	XMLName  xml.Name      `json:"-" yaml:"-" msgpack:"-" bson:"-" xml:"snapshot"`
	Family   string        `json:"family" yaml:"family" msgpack:"family" bson:"family" xml:"family,attr"`
	Mappings []MappingInfo `json:"mappings" yaml:"mappings" msgpack:"mappings" bson:"mappings" xml:"mapping"`
}

// Describe builds r's registry and returns it as a Snapshot.
func Describe(r *MappingResolver) (Snapshot, error) {
	ms, err := r.Mappings()
	if err != nil {
		return Snapshot{}, err
	}
	s := Snapshot{
		Family:   r.Family().String(),
		Mappings: make([]MappingInfo, 0, ms.Len()),
	}
	for _, m := range ms.Entries() {
		s.Mappings = append(s.Mappings, MappingInfo{
			Type:             m.Type.String(),
			DataTypeName:     m.DataTypeName.String(),
			MatchRequirement: m.MatchRequirement.String(),
			Default:          m.IsDefault,
		})
	}
	return s, nil
}

// MarshalSnapshot encodes s with c.
func MarshalSnapshot(c Codec, s Snapshot) ([]byte, error) {
	data, err := c.Marshal(s)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot produced by MarshalSnapshot.
func UnmarshalSnapshot(c Codec, data []byte) (Snapshot, error) {
	var s Snapshot
	if err := c.Unmarshal(data, &s); err != nil {
		return Snapshot{}, newCodecError(ErrUnmarshal, err)
	}
	return s, nil
}
