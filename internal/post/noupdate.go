// SPDX-License-Identifier: AGPL-3.0-or-later

package post

import (
	"fmt"
	"time"
)

// NoUpdateDraft builds the placeholder post for a day without activity. It is
// only used when the no-update feature is explicitly enabled.
func NoUpdateDraft(now time.Time) Draft {
	yesterday := now.AddDate(0, 0, -1)
	friendly := yesterday.Format("January 2, 2006")

	body := fmt.Sprintf(`No development activity was recorded on %s.

This is an automated post generated because the `+"`enable_no_update_posts`"+` configuration option is enabled.

Check back tomorrow for new updates!`, friendly)

	return Draft{
		Title: "No Development Updates - " + friendly,
		Body:  body,
	}
}
