/*
Package checklist keeps "(done/total)" counters and progress bars in markdown documents in
step with the checkboxes below them.

📋 Document shape:
-----------------

	## Release (1/3)            <- header: <prefix>(<counter>)<suffix>
	█████░░░░░ 33%             <- optional bar line (or the "[progress_bar]" tag)
	- [x] tag the release      <- tasks
	- [ ] publish notes
	- [ ] announce
	                           <- blank line ends the group

A group also ends at the next header line. A header whose group has no tasks is never
touched, so a fresh "Ideas (/)" section keeps its bare counter until the first task shows up.

🔁 Flow:
-------

	text --Lines--> []string --Scan--> []Group --Synchronize--> []LineEdit --Apply--> text

Every pass is derived from the text alone and running Synchronize on its own output yields no
edits.
*/
package checklist
