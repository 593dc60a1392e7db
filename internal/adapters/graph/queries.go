package graph

const challengeQuery = `query Challenge($request: ChallengeRequest!) {
  challenge(request: $request) {
    text
  }
}`

const authenticateMutation = `mutation Authenticate($request: SignedAuthChallenge!) {
  authenticate(request: $request) {
    accessToken
    refreshToken
  }
}`

const profileQuery = `query Profile($request: ProfileRequest!) {
  profile(request: $request) {
    id
    handle {
      fullHandle
    }
    metadata {
      displayName
      bio
    }
    stats {
      followers
      following
    }
  }
}`

const createOnchainPostTypedDataMutation = `mutation CreateOnchainPostTypedData($request: OnchainPostRequest!) {
  createOnchainPostTypedData(request: $request) {
    id
    typedData {
      domain
      types
      value
    }
  }
}`

const broadcastOnchainMutation = `mutation BroadcastOnchain($request: BroadcastRequest!) {
  broadcastOnchain(request: $request) {
    ... on RelaySuccess {
      txHash
    }
    ... on RelayError {
      reason
    }
  }
}`

const hasTxHashBeenIndexedQuery = `query HasTxHashBeenIndexed($request: HasTxHashBeenIndexedRequest!) {
  hasTxHashBeenIndexed(request: $request) {
    ... on TransactionIndexedResult {
      indexed
    }
    ... on TransactionError {
      reason
    }
  }
}`

const publicationsQuery = `query Publications($request: PublicationsRequest!) {
  publications(request: $request) {
    items {
      ... on Post {
        id
        by {
          id
        }
        metadata {
          ... on TextOnlyMetadataV3 {
            content
          }
        }
        createdAt
      }
    }
  }
}`

const revokeAuthenticationMutation = `mutation RevokeAuthentication {
  revokeAuthentication
}`
