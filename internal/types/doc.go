/*
Package types defines the data shared between the API client, the renderers
and the interaction layers.

# Wire Contract

Field names follow the analysis backend exactly and must not be renamed:

	POST /buscar_similares  {prompt, top_k} -> {textos: [{texto, categoria, similitude, idioma}]}
	POST /classificar       {prompt}        -> {classificacao: {categoria, confianca, todas_categorias}}
	POST /sentimento        {prompt}        -> {sentimento: {sentimento, confianca}}
	POST /analise_completa  {prompt, top_k} -> {resultado: {textos_similares, classificacao, sentimento}}

Classification and sentiment payloads may carry an "erro" field instead of a
result when the model failed server-side; the request itself still succeeds.

# Ownership

Every value here is request-scoped. Nothing is cached between interactions.
*/
package types
