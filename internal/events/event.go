// Package events carries favorites changes over Cloud Pub/Sub.
package events

import (
	"wallcraft/internal/favorites"
	"wallcraft/internal/model"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Event is one favorites change together with the list it produced.
type Event struct {
	Action    favorites.Action
	ID        int64
	Seq       int64
	Favorites []model.Wallpaper
}

func (e Event) Encode(enc *jx.Encoder) {
	enc.ObjStart()
	enc.FieldStart("action")
	enc.Str(string(e.Action))
	if e.ID != 0 {
		enc.FieldStart("id")
		enc.Int64(e.ID)
	}
	enc.FieldStart("seq")
	enc.Int64(e.Seq)
	enc.FieldStart("favorites")
	enc.ArrStart()
	for _, w := range e.Favorites {
		w.Encode(enc)
	}
	enc.ArrEnd()
	enc.ObjEnd()
}

func (e *Event) Decode(d *jx.Decoder) error {
	e.Favorites = make([]model.Wallpaper, 0)
	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		switch string(k) {
		case "action":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "decode action")
			}
			e.Action = favorites.Action(s)
		case "id":
			id, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "decode id")
			}
			e.ID = id
		case "seq":
			seq, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "decode seq")
			}
			e.Seq = seq
		case "favorites":
			return d.Arr(func(d *jx.Decoder) error {
				var w model.Wallpaper
				if err := w.Decode(d); err != nil {
					return err
				}
				e.Favorites = append(e.Favorites, w)
				return nil
			})
		default:
			return d.Skip()
		}
		return nil
	})
}

func (e Event) Bytes() []byte {
	var enc jx.Encoder
	e.Encode(&enc)
	return enc.Bytes()
}

func Parse(data []byte) (Event, error) {
	var e Event
	if err := e.Decode(jx.DecodeBytes(data)); err != nil {
		return Event{}, errors.Wrap(err, "parse event")
	}
	if e.Action == "" {
		return Event{}, errors.New("parse event: missing action")
	}
	return e, nil
}
