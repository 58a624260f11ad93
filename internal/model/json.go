package model

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Encode encodes Wallpaper as json.
func (w *Wallpaper) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(w.ID)
	e.FieldStart("width")
	e.Int(w.Width)
	e.FieldStart("height")
	e.Int(w.Height)
	e.FieldStart("url")
	e.Str(w.URL)
	e.FieldStart("photographer")
	e.Str(w.Photographer)
	e.FieldStart("photographer_url")
	e.Str(w.PhotographerURL)
	e.FieldStart("photographer_id")
	e.Int64(w.PhotographerID)
	if w.AvgColor != "" {
		e.FieldStart("avg_color")
		e.Str(w.AvgColor)
	}
	e.FieldStart("src")
	w.Src.Encode(e)
	if w.Alt != "" {
		e.FieldStart("alt")
		e.Str(w.Alt)
	}
	e.ObjEnd()
}

// Decode decodes Wallpaper from json. Unknown fields are skipped and null
// strings decode as "".
func (w *Wallpaper) Decode(d *jx.Decoder) error {
	if w == nil {
		return errors.New("invalid: unable to decode Wallpaper to nil")
	}
	if err := d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		var err error
		switch string(k) {
		case "id":
			w.ID, err = d.Int64()
		case "width":
			w.Width, err = d.Int()
		case "height":
			w.Height, err = d.Int()
		case "url":
			w.URL, err = decodeStr(d)
		case "photographer":
			w.Photographer, err = decodeStr(d)
		case "photographer_url":
			w.PhotographerURL, err = decodeStr(d)
		case "photographer_id":
			w.PhotographerID, err = d.Int64()
		case "avg_color":
			w.AvgColor, err = decodeStr(d)
		case "alt":
			w.Alt, err = decodeStr(d)
		case "src":
			err = w.Src.Decode(d)
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "decode field %q", k)
		}
		return nil
	}); err != nil {
		return errors.Wrap(err, "decode Wallpaper")
	}
	return nil
}

func (w Wallpaper) MarshalJSON() ([]byte, error) {
	e := jx.Encoder{}
	w.Encode(&e)
	return e.Bytes(), nil
}

func (w *Wallpaper) UnmarshalJSON(data []byte) error {
	return w.Decode(jx.DecodeBytes(data))
}

func (s *Src) Encode(e *jx.Encoder) {
	e.ObjStart()
	for _, f := range []struct {
		name  string
		value string
	}{
		{VariantOriginal, s.Original},
		{VariantLarge2x, s.Large2x},
		{VariantLarge, s.Large},
		{VariantMedium, s.Medium},
		{VariantSmall, s.Small},
		{VariantPortrait, s.Portrait},
		{VariantLandscape, s.Landscape},
		{VariantTiny, s.Tiny},
	} {
		e.FieldStart(f.name)
		e.Str(f.value)
	}
	e.ObjEnd()
}

func (s *Src) Decode(d *jx.Decoder) error {
	if s == nil {
		return errors.New("invalid: unable to decode Src to nil")
	}
	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		var dst *string
		switch string(k) {
		case VariantOriginal:
			dst = &s.Original
		case VariantLarge2x:
			dst = &s.Large2x
		case VariantLarge:
			dst = &s.Large
		case VariantMedium:
			dst = &s.Medium
		case VariantSmall:
			dst = &s.Small
		case VariantPortrait:
			dst = &s.Portrait
		case VariantLandscape:
			dst = &s.Landscape
		case VariantTiny:
			dst = &s.Tiny
		default:
			return d.Skip()
		}
		v, err := decodeStr(d)
		if err != nil {
			return errors.Wrapf(err, "decode src %q", k)
		}
		*dst = v
		return nil
	})
}

// EncodeList serialises a favorites list as a single JSON array.
func EncodeList(list []Wallpaper) []byte {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ArrStart()
	for i := range list {
		list[i].Encode(e)
	}
	e.ArrEnd()

	out := make([]byte, len(e.Bytes()))
	copy(out, e.Bytes())
	return out
}

// DecodeList is the inverse of EncodeList. On error it returns nil, never a
// partially decoded list.
func DecodeList(data []byte) ([]Wallpaper, error) {
	d := jx.DecodeBytes(data)
	list := make([]Wallpaper, 0)
	if err := d.Arr(func(d *jx.Decoder) error {
		var w Wallpaper
		if err := w.Decode(d); err != nil {
			return err
		}
		list = append(list, w)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode favorites")
	}
	// Arr stops at the closing bracket; anything after it means corruption.
	if err := d.Skip(); err != io.EOF {
		return nil, errors.New("decode favorites: unexpected trailing data")
	}
	return list, nil
}

func decodeStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}
