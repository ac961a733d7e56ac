// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	FileNotFoundId
	UnresolvedVersionId
	ConflictingTargetId
	MissingTargetId
	UploadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the curseupload configuration file.

## Configuration file locations:
- Linux: ~/.config/curseupload/config.cue
- macOS: ~/Library/Application Support/curseupload/config.cue
- Windows: %APPDATA%\curseupload\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults
- Pass the API key on the command line instead:
~~~
$ curseupload upload --api-key <key> ...
~~~

## Example configuration:
~~~cue
api_key: "your-api-token"
endpoint: "https://minecraft.curseforge.com"

ui: {
  verbose: false
}
~~~`,
	}

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

The artifact or changelog file you pointed at does not exist.

## Things you can try:
- Check the path for typos
- Make sure the build actually produced the artifact:
~~~
$ ls -l path/to/your/artifact.jar
~~~
- Pass an absolute path if you are running from another directory`,
	}

	unresolvedVersionIssue = &Issue{
		id: UnresolvedVersionId,
		mdMsg: `
# Unknown game version!

One or more of the versions you passed with --version matched nothing in the
remote version catalog, so the upload was not started.

## Things you can try:
- List the catalog and look for the exact name or slug:
~~~
$ curseupload versions
~~~
- Version labels are matched verbatim: "1.20.1" and "1-20-1" are both
  accepted, but "v1.20.1" is not
- Remember the catalog is per game; check your endpoint if you upload
  for a game other than Minecraft`,
	}

	conflictingTargetIssue = &Issue{
		id: ConflictingTargetId,
		mdMsg: `
# Conflicting upload target!

You passed both --parent-file-id and --version, but a file is either a child
of an existing file or a standalone file for specific game versions — never both.

## Things you can try:
- Drop --parent-file-id to upload a standalone file:
~~~
$ curseupload upload --version 1.20.1 ...
~~~
- Drop --version to attach the file to an existing parent:
~~~
$ curseupload upload --parent-file-id 12345 ...
~~~`,
	}

	missingTargetIssue = &Issue{
		id: MissingTargetId,
		mdMsg: `
# Missing upload target!

Neither --parent-file-id nor --version was given, so the API cannot tell
where the file belongs.

## Things you can try:
- Upload a standalone file compatible with one or more game versions:
~~~
$ curseupload upload --version 1.20.1 --version 1.19 ...
~~~
- Or attach the file to an existing parent file:
~~~
$ curseupload upload --parent-file-id 12345 ...
~~~`,
	}

	uploadFailedIssue = &Issue{
		id: UploadFailedId,
		mdMsg: `
# Upload failed!

The upload request did not complete.

## Common causes:
- Invalid or expired API token (check the account's API Tokens page)
- Wrong project ID, or the token's account is not an author of the project
- Network problems between you and the endpoint

## Things you can try:
- Run with verbose mode for the full request trace:
~~~
$ curseupload --verbose upload ...
~~~
- Verify the token works against a read-only endpoint:
~~~
$ curseupload versions
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		fileNotFoundIssue.Id():      fileNotFoundIssue,
		unresolvedVersionIssue.Id(): unresolvedVersionIssue,
		conflictingTargetIssue.Id(): conflictingTargetIssue,
		missingTargetIssue.Id():     missingTargetIssue,
		uploadFailedIssue.Id():      uploadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
