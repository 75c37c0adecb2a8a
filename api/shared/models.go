/* models.go
 * This file contain the structs that are shared between sub packages
 */

package shared

// TeamTemplate is the display record a team template name resolves to
type TeamTemplate struct {
	BracketName string `bson:"bracketname,omitempty"`
	DisplayName string `bson:"displayname,omitempty"`
	PageName    string `bson:"pagename,omitempty"`
	ShortName   string `bson:"shortname,omitempty"`
}
