package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/state"
)

// EditMetadata applies edit to the item's metadata and saves the result
// through the same change notification the outliner uses.
func EditMetadata(s *state.State, item *outline.Item, edit func(*outline.Metadata)) (outline.Metadata, error) {
	folder, err := s.Binder.Folder(item.ID)
	if err != nil {
		return outline.Metadata{}, err
	}

	m := outline.New(folder, s.Binder.Contents, s.Binder.Metadata)

	var saveErr error
	m.OnMetadataChange(func(id string, md outline.Metadata) {
		saveErr = s.Binder.SaveMetadata(id, md)
	})

	md := m.Metadata(item.ID)
	if md.Label != nil {
		label := *md.Label
		md.Label = &label
	}
	edit(&md)
	m.ChangeMetadata(item.ID, md)
	if saveErr != nil {
		return outline.Metadata{}, saveErr
	}

	s.Logger.WithFields(logrus.Fields{
		"id":     item.ID,
		"status": md.Status.String(),
	}).Debug("metadata edited from the command line")
	return s.Binder.Metadata[item.ID], nil
}
