package tsmockgen

// boilerplate is the runtime support emitted once at the top of every
// generated file. Builders merge overrides into their base mock recursively;
// arrays are replaced wholesale, not merged element-wise.
const boilerplate = `type DeepPartial<T> = T extends (infer E)[]
  ? DeepPartial<E>[]
  : T extends object
    ? { [K in keyof T]?: DeepPartial<T[K]> }
    : T;

const isMergeableObject = (value: unknown): value is Record<string, unknown> =>
  typeof value === "object" && value !== null && !Array.isArray(value);

const mergeDeep = <T>(base: T, overrides: DeepPartial<T>): T => {
  if (!isMergeableObject(base) || !isMergeableObject(overrides)) {
    return overrides as T;
  }
  const merged: Record<string, unknown> = { ...base };
  for (const key of Object.keys(overrides)) {
    const baseValue = (base as Record<string, unknown>)[key];
    const overrideValue = (overrides as Record<string, unknown>)[key];
    merged[key] =
      isMergeableObject(baseValue) && isMergeableObject(overrideValue)
        ? mergeDeep(baseValue, overrideValue as DeepPartial<unknown>)
        : overrideValue;
  }
  return merged as T;
};

export const createBuilder =
  <T>(base: T) =>
  (overrides?: DeepPartial<T>): T =>
    overrides === undefined ? base : mergeDeep(base, overrides);
`
