package github

import (
	"context"
	"encoding/json"
	"net/http"
)

const repoFields = `
fragment RepoFields on Repository {
  nameWithOwner
  name
  owner { login }
  url
  description
  stargazerCount
  forkCount
  isFork
  isArchived
  pushedAt
  primaryLanguage { name }
  languages(first: 5, orderBy: {field: SIZE, direction: DESC}) { edges { node { name } } }
  repositoryTopics(first: 8) { nodes { topic { name } } }
}`

const profileFields = `
fragment ProfileFields on User {
  login
  name
  url
  avatarUrl
  bio
  location
  company
  email
  twitterUsername
  websiteUrl
  followers { totalCount }
  contributionsCollection {
    contributionCalendar { totalContributions }
    totalCommitContributions
    totalPullRequestContributions
    totalIssueContributions
    totalPullRequestReviewContributions
  }
  repositories(first: 8, orderBy: {field: STARGAZERS, direction: DESC}) { nodes { ...RepoFields } }
  repositoriesContributedTo(first: 1, orderBy: {field: PUSHED_AT, direction: DESC}) { nodes { pushedAt } }
}`

const searchReposQuery = `
query SearchRepos($query: String!, $first: Int!) {
  search(query: $query, type: REPOSITORY, first: $first) {
    repositoryCount
    nodes { ... on Repository { ...RepoFields } }
  }
}` + repoFields

const searchUsersQuery = `
query SearchUsers($query: String!, $first: Int!) {
  search(query: $query, type: USER, first: $first) {
    userCount
    nodes { ... on User { ...ProfileFields } }
  }
}` + profileFields + repoFields

const nodesQuery = `
query Nodes($ids: [ID!]!) {
  nodes(ids: $ids) { ... on User { ...ProfileFields } }
}` + profileFields + repoFields

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlEnvelope struct {
	Data   json.RawMessage    `json:"data"`
	Errors []GraphQLErrorItem `json:"errors"`
}

// Query posts a GraphQL document and decodes data into out
//
// An errors list fails the call unless every entry is NOT_FOUND and data came back;
// lookups by node id report deleted accounts that way and leave a null in place.
func (c *Client) Query(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, c.opts.GraphQLURL, body, func(r *Response) error {
		var env gqlEnvelope
		if err := json.Unmarshal(r.Body, &env); err != nil {
			return err
		}
		if len(env.Errors) > 0 && !(onlyNotFound(env.Errors) && hasData(env.Data)) {
			return &GraphQLError{Errors: env.Errors}
		}
		if !hasData(env.Data) {
			return nil
		}
		return json.Unmarshal(env.Data, out)
	})
}

func onlyNotFound(errs []GraphQLErrorItem) bool {
	for _, e := range errs {
		if e.Type != "NOT_FOUND" {
			return false
		}
	}
	return true
}

func hasData(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
