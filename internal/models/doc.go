// Package models defines the SharkBite user record and the weekly goals it
// owns, together with the JSON layout they are persisted in.
//
// The persisted layout is a single object keyed by username:
//
//	{
//	  "amy": {
//	    "username": "amy",
//	    "role": "Student",
//	    "badges": ["Goal Getter"],
//	    "typingMinutes": 2,
//	    "subjects": ["Math", "Writing"],
//	    "activeSubject": "Math",
//	    "assignedQuest": "",
//	    "weeklyGoals": [{"id": "...", "title": "...", "subject": "Math",
//	                     "dueISO": "2026-10-24T23:59:59.999+03:00", "status": "approved"}],
//	    "schemaVersion": 1
//	  }
//	}
//
// Records written by older front-ends may miss subjects, goals or the schema
// version; Upgrade fills them in on load.
package models
