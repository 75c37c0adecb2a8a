/* team_templates.go
 * Contains the methods for interacting with the team_templates collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bracket-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrTeamTemplateMissing is returned when neither the db nor the api knows the template
var ErrTeamTemplateMissing = errors.New("team template not in db or api")

// Function used to fetch one team template from db, falling back to the LiquipediaDB api
// Preconditions: Receives receiver pointer for Store and the exact template name
// Postconditions: Returns the template's display record or error message if the operation
// was unsuccessful. An api miss is reported as ErrTeamTemplateMissing
func (s *Store) FetchTeamTemplate(name string) (*shared.TeamTemplate, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("template name cannot be empty")
	}

	var res TeamTemplateDoc
	err := s.Collections.TeamTemplates.FindOne(context.TODO(), bson.D{{Key: "name", Value: name}}).Decode(&res)
	if err == nil && res.TTL >= time.Now().Unix() {
		return &shared.TeamTemplate{
			BracketName: res.BracketName,
			DisplayName: res.DisplayName,
			PageName:    res.PageName,
			ShortName:   res.ShortName,
		}, nil
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error fetching template from db: %w", err)
	}

	template, err := s.External.FetchTeamTemplate(name)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("%w: %q", ErrTeamTemplateMissing, name)
	}
	if err := s.StoreTeamTemplate(name, template); err != nil {
		return nil, err
	}
	return template, nil
}

// Function to store one team template under its lowercased name
// Preconditions: Receives pointer for Store, the template name and the display record
// Postconditions: Upserts the template document, returns error message if the operation was
// unsuccessful
func (s *Store) StoreTeamTemplate(name string, template *shared.TeamTemplate) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || template == nil {
		return fmt.Errorf("template name and record are both required")
	}

	doc := TeamTemplateDoc{
		Name:        name,
		BracketName: template.BracketName,
		DisplayName: template.DisplayName,
		PageName:    template.PageName,
		ShortName:   template.ShortName,
		TTL:         time.Now().Add(templateTTL).Unix(),
	}

	var raw bson.M
	err := s.Collections.TeamTemplates.FindOne(context.TODO(), bson.M{"name": name}).Decode(&raw)
	notFound := err == mongo.ErrNoDocuments

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing template failed: %w", err)
	}

	if notFound {
		_, err := s.Collections.TeamTemplates.InsertOne(context.TODO(), doc)
		if err != nil {
			return fmt.Errorf("failed to insert team template: %w", err)
		}
		return nil
	}
	_, err = s.Collections.TeamTemplates.UpdateOne(context.TODO(), bson.M{"name": name}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update team template: %w", err)
	}
	return nil
}
